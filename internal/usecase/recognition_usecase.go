package usecase

import (
	"context"
	"sync"
	"time"

	"kiosk/internal/activitylog"
	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
)

const DefaultPollInterval = time.Second

// 顔認識ステータスのポーリング。
// 最新の状態だけを持つ。カートはこの状態に依存しない。
type RecognitionUsecase struct {
	gw       repo.RecognitionGateway
	sessions *SessionRegistry
	interval time.Duration
	log      logrus.FieldLogger

	mu      sync.RWMutex
	current model.RecognitionStatus
}

func NewRecognitionUsecase(gw repo.RecognitionGateway, sessions *SessionRegistry, interval time.Duration, log logrus.FieldLogger) *RecognitionUsecase {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &RecognitionUsecase{
		gw:       gw,
		sessions: sessions,
		interval: interval,
		log:      log,
		current:  model.RecognitionStatus{Status: model.RecognitionScanning},
	}
}

// ctx が終わるまで interval ごとに Poll する
func (u *RecognitionUsecase) Run(ctx context.Context) {
	t := time.NewTicker(u.interval)
	defer t.Stop()

	_, _ = u.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = u.Poll(ctx)
		}
	}
}

// 1回だけ問い合わせる。失敗したら直前の状態を残す（次の tick まで再試行しない）。
func (u *RecognitionUsecase) Poll(ctx context.Context) (model.RecognitionStatus, error) {
	st, err := u.gw.Status(ctx)
	if err != nil {
		u.log.WithError(err).Warn("recognition status poll failed")
		return u.Current(), err
	}
	next := st.Normalize()

	u.mu.Lock()
	prev := u.current
	u.current = next
	u.mu.Unlock()

	if next != prev && next.Identified() {
		u.log.WithFields(logrus.Fields{
			activitylog.Field: true,
			"customer_id":     next.CustomerID,
			"status":          next.Status,
		}).Infof("Customer detected: %s", next.CustomerID)
	}
	return next, nil
}

func (u *RecognitionUsecase) Current() model.RecognitionStatus {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.current
}

// 「Skip」。バックエンドのセッションを捨て、このキオスクのカートも空にする。
// 注文送信中なら 409。バックエンドが落ちていても手元は scanning に戻す。
func (u *RecognitionUsecase) Skip(ctx context.Context, sessionID string) error {
	if err := u.sessions.Cart(sessionID).Clear(); err != nil {
		return cartError(err)
	}

	u.mu.Lock()
	u.current = model.RecognitionStatus{Status: model.RecognitionScanning}
	u.mu.Unlock()

	if err := u.gw.ResetSession(ctx); err != nil {
		u.log.WithError(err).WithField("session", sessionID).Warn("reset session failed")
		return gatewayError(err, "failed to reset session")
	}

	u.log.WithFields(logrus.Fields{activitylog.Field: true, "session": sessionID}).Info("Session reset")
	return nil
}
