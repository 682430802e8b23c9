package cafeapi

import (
	"context"
	"net/http"
	"net/url"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type moodGateway struct {
	c *Client
}

func NewMoodGateway(c *Client) repo.MoodGateway {
	return &moodGateway{c: c}
}

func (g *moodGateway) Presets(ctx context.Context) (map[string]string, error) {
	var out model.MoodPresets
	status, err := g.c.doJSON(ctx, http.MethodGet, "/api/mood-presets", nil, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &repo.RejectedError{Status: status, Message: "mood presets unavailable"}
	}
	return out.Presets, nil
}

type moodRequest struct {
	UserInput string `json:"user_input"`
}

func (g *moodGateway) Recommend(ctx context.Context, userInput string) (model.MoodResponse, error) {
	var out model.MoodResponse
	if _, err := g.c.doJSON(ctx, http.MethodPost, "/api/mood-recommendation", moodRequest{UserInput: userInput}, &out); err != nil {
		return model.MoodResponse{}, err
	}
	return out, nil
}

func (g *moodGateway) RecommendPreset(ctx context.Context, key string) (model.MoodResponse, error) {
	var out model.MoodResponse
	path := "/api/mood-recommendation/preset/" + url.PathEscape(key)
	if _, err := g.c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return model.MoodResponse{}, err
	}
	return out, nil
}
