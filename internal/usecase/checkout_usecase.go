package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kiosk/internal/activitylog"
	"kiosk/internal/domain/cart"
	"kiosk/internal/domain/model"
	"kiosk/internal/money"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
)

// 注文完了画面からカメラ画面に戻るまでの秒数
const ReturnAfterSeconds = 3

// 今の認識状態を読む約束（RecognitionUsecase が実装）
type StatusReader interface {
	Current() model.RecognitionStatus
}

type CheckoutUsecase struct {
	sessions *SessionRegistry
	orders   repo.OrderGateway
	receipts repo.ReceiptRepository // nil なら控えを残さない
	status   StatusReader
	ids      IDGenerator
	clock    Clock
	log      logrus.FieldLogger
}

// DI
func NewCheckoutUsecase(
	sessions *SessionRegistry,
	orders repo.OrderGateway,
	receipts repo.ReceiptRepository,
	status StatusReader,
	ids IDGenerator,
	clock Clock,
	log logrus.FieldLogger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		sessions: sessions,
		orders:   orders,
		receipts: receipts,
		status:   status,
		ids:      ids,
		clock:    clock,
		log:      log,
	}
}

type CheckoutOutput struct {
	Status             string         `json:"status"`
	Total              int64          `json:"total"`
	TotalLabel         string         `json:"total_label"`
	Lines              []CartItemView `json:"lines"`
	ReceiptID          string         `json:"receipt_id,omitempty"`
	ReturnAfterSeconds int            `json:"return_after_seconds"`
}

// カートの中身を注文として送る。
// 送信中の二重送信は 409、空カートは通信せず 400。
// 失敗したらカートはそのまま残す（もう一度押せる）。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sessionID string) (CheckoutOutput, error) {
	c := u.sessions.Cart(sessionID)

	if err := c.BeginSubmit(); err != nil {
		return CheckoutOutput{}, errSubmitting
	}
	defer c.EndSubmit()

	req, err := c.ToOrderRequest()
	if errors.Is(err, cart.ErrEmptyCart) {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		return CheckoutOutput{}, err
	}

	entries := c.Entries()
	clientTotal := c.Total()
	itemCount := c.ItemCount()

	serverTotal, submitErr := u.orders.SubmitOrder(ctx, req)
	total, err := c.ApplySubmissionResult(model.SubmissionResult{Total: serverTotal, Err: submitErr})
	if err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{
			activitylog.Field: true,
			"session":         sessionID,
		}).Error("Order failed")
		return CheckoutOutput{}, gatewayError(err, "failed to place order")
	}

	log := u.log.WithField("session", sessionID)
	if total != clientTotal {
		log.WithFields(logrus.Fields{"client_total": clientTotal, "server_total": total}).Warn("order total mismatch")
	}

	lines := make([]CartItemView, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, toCartItemView(e))
		log.WithField(activitylog.Field, true).
			Infof("Order: %dx %s = %s", e.Quantity, e.Item.Name, money.FormatRupiah(e.LineTotal()))
	}
	log.WithField(activitylog.Field, true).Infof("Total pesanan: %s", money.FormatRupiah(total))

	out := CheckoutOutput{
		Status:             "success",
		Total:              total,
		TotalLabel:         money.FormatRupiah(total),
		Lines:              lines,
		ReturnAfterSeconds: ReturnAfterSeconds,
	}
	out.ReceiptID = u.journal(ctx, sessionID, req, total, clientTotal, itemCount)

	return out, nil
}

// 控えを残す。失敗しても注文は成功のまま。
func (u *CheckoutUsecase) journal(ctx context.Context, sessionID string, req model.OrderRequest, total, clientTotal, itemCount int64) string {
	if u.receipts == nil {
		return ""
	}

	b, err := json.Marshal(req.Orders)
	if err != nil {
		u.log.WithError(err).Warn("failed to encode receipt lines")
		return ""
	}

	r := model.Receipt{
		ID:          u.ids.NewID(),
		SessionID:   sessionID,
		Total:       total,
		ClientTotal: clientTotal,
		ItemCount:   itemCount,
		LinesJSON:   string(b),
		CreatedAt:   u.clock.Now(),
	}
	if u.status != nil {
		r.CustomerID = u.status.Current().CustomerID
	}

	if err := u.receipts.Create(ctx, r); err != nil {
		u.log.WithError(err).WithField("receipt_id", r.ID).Error("failed to save receipt")
		return ""
	}
	return r.ID
}
