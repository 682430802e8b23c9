package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

// 顔認識ステータスの約束
type RecognitionGateway interface {
	Status(ctx context.Context) (model.RecognitionStatus, error)
	ResetSession(ctx context.Context) error
}
