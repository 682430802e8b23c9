package usecase

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
)

const minMoodInputRunes = 5

// おすすめ結果からカートへ入れる約束（CartUsecase が実装）
type CartController interface {
	QuickAddByID(ctx context.Context, sessionID string, itemID int64) (CartView, error)
}

type MoodPreset struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

type MoodPresetsOutput struct {
	Presets  []MoodPreset `json:"presets"`
	Fallback bool         `json:"fallback"`
}

// サーバーから取れないときのプリセット（本文は自由入力として送る）
var fallbackMoodPresets = []MoodPreset{
	{Key: "tired", Label: "Capek", Prompt: "Hari ini capek banget, butuh energi"},
	{Key: "stress", Label: "Stress", Prompt: "Lagi stress, butuh yang menenangkan"},
	{Key: "hot", Label: "Kepanasan", Prompt: "Cuaca panas, pengen yang seger"},
	{Key: "focus", Label: "Butuh Fokus", Prompt: "Butuh konsentrasi untuk kerja"},
	{Key: "cozy", Label: "Pengen Nyaman", Prompt: "Pengen suasana nyaman dan hangat"},
	{Key: "creative", Label: "Lagi Kreatif", Prompt: "Mood kreatif, pengen yang unik"},
}

type MoodUsecase struct {
	gw   repo.MoodGateway
	cart CartController
	log  logrus.FieldLogger
}

// DI
func NewMoodUsecase(gw repo.MoodGateway, cart CartController, log logrus.FieldLogger) *MoodUsecase {
	return &MoodUsecase{gw: gw, cart: cart, log: log}
}

type MoodOutput struct {
	Recommendation model.MoodRecommendation `json:"recommendation"`
	PresetUsed     *model.MoodPresetUsed    `json:"preset_used,omitempty"`
}

// ボタン表示順は固定（tired, stress, ...）。サーバーに無いキーは出さない。
func (u *MoodUsecase) Presets(ctx context.Context) (MoodPresetsOutput, error) {
	presets, err := u.gw.Presets(ctx)
	if err != nil {
		u.log.WithError(err).Warn("mood presets unavailable, using fallback")
		out := make([]MoodPreset, len(fallbackMoodPresets))
		copy(out, fallbackMoodPresets)
		return MoodPresetsOutput{Presets: out, Fallback: true}, nil
	}

	out := make([]MoodPreset, 0, len(presets))
	for _, p := range fallbackMoodPresets {
		text, ok := presets[p.Key]
		if !ok {
			continue
		}
		out = append(out, MoodPreset{Key: p.Key, Label: p.Label, Prompt: text})
	}
	return MoodPresetsOutput{Presets: out}, nil
}

// 自由入力。空や短すぎる入力は通信せずに 400。
func (u *MoodUsecase) Recommend(ctx context.Context, userInput string) (MoodOutput, error) {
	text := strings.TrimSpace(userInput)
	if text == "" {
		return MoodOutput{}, NewHTTPError(http.StatusBadRequest, "user_input is required")
	}
	if utf8.RuneCountInString(text) < minMoodInputRunes {
		return MoodOutput{}, NewHTTPError(http.StatusBadRequest, "user_input is too short")
	}

	res, err := u.gw.Recommend(ctx, text)
	return u.result(res, err)
}

func (u *MoodUsecase) RecommendPreset(ctx context.Context, key string) (MoodOutput, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return MoodOutput{}, NewHTTPError(http.StatusBadRequest, "preset key is required")
	}

	res, err := u.gw.RecommendPreset(ctx, key)
	return u.result(res, err)
}

// おすすめされた商品をカートに入れる（数量1）
func (u *MoodUsecase) AddSuggestion(ctx context.Context, sessionID string, itemID int64) (CartView, error) {
	return u.cart.QuickAddByID(ctx, sessionID, itemID)
}

func (u *MoodUsecase) result(res model.MoodResponse, err error) (MoodOutput, error) {
	if err != nil {
		u.log.WithError(err).Error("mood recommendation failed")
		return MoodOutput{}, gatewayError(err, "failed to get recommendation")
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "recommendation failed"
		}
		return MoodOutput{}, NewHTTPError(http.StatusUnprocessableEntity, msg)
	}
	if res.Recommendation == nil || res.Recommendation.MenuItem == nil {
		return MoodOutput{}, NewHTTPError(http.StatusUnprocessableEntity, "menu item not found")
	}

	return MoodOutput{Recommendation: *res.Recommendation, PresetUsed: res.PresetUsed}, nil
}
