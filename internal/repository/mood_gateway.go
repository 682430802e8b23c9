package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

// ムードおすすめサービスの約束
type MoodGateway interface {
	Presets(ctx context.Context) (map[string]string, error)
	Recommend(ctx context.Context, userInput string) (model.MoodResponse, error)
	RecommendPreset(ctx context.Context, key string) (model.MoodResponse, error)
}
