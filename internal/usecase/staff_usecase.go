package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"kiosk/internal/activitylog"
	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
)

// スタッフ画面で見る活動ログ
type ActivityReader interface {
	Entries() []string
}

type StaffUsecase struct {
	orders   repo.OrderGateway
	receipts repo.ReceiptRepository
	activity ActivityReader
	log      logrus.FieldLogger
}

// DI
func NewStaffUsecase(orders repo.OrderGateway, receipts repo.ReceiptRepository, activity ActivityReader, log logrus.FieldLogger) *StaffUsecase {
	return &StaffUsecase{orders: orders, receipts: receipts, activity: activity, log: log}
}

type ListReceiptsInput struct {
	SessionID string
	From      *time.Time
	Limit     int
	Offset    int
}

// 1行テキストの購入（旧来の POST /purchase）
func (u *StaffUsecase) LegacyPurchase(ctx context.Context, purchase string) error {
	purchase = strings.TrimSpace(purchase)
	if purchase == "" {
		return NewHTTPError(http.StatusBadRequest, "purchase is required")
	}

	if err := u.orders.SubmitLegacyPurchase(ctx, purchase); err != nil {
		u.log.WithError(err).Error("legacy purchase failed")
		return gatewayError(err, "failed to submit purchase")
	}
	u.log.WithField(activitylog.Field, true).Infof("Purchase: %s", purchase)
	return nil
}

func (u *StaffUsecase) Logs() []string {
	return u.activity.Entries()
}

// 新しい順。DB未設定なら 503。
func (u *StaffUsecase) Receipts(ctx context.Context, in ListReceiptsInput) ([]model.Receipt, error) {
	if u.receipts == nil {
		return nil, NewHTTPError(http.StatusServiceUnavailable, "receipt journal disabled")
	}
	if in.Limit < 0 || in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}

	f := repo.ReceiptFilter{CreatedFrom: in.From, Limit: in.Limit, Offset: in.Offset}
	if s := strings.TrimSpace(in.SessionID); s != "" {
		f.SessionID = &s
	}

	rs, err := u.receipts.List(ctx, f)
	if err != nil {
		u.log.WithError(err).Error("failed to list receipts")
		return nil, err
	}
	return rs, nil
}
