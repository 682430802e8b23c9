package cafeapi

import (
	"context"
	"net/http"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
)

type recognitionGateway struct {
	c *Client
}

func NewRecognitionGateway(c *Client) repo.RecognitionGateway {
	return &recognitionGateway{c: c}
}

func (g *recognitionGateway) Status(ctx context.Context) (model.RecognitionStatus, error) {
	var st model.RecognitionStatus
	if _, err := g.c.doJSON(ctx, http.MethodGet, "/api/recognition_status", nil, &st); err != nil {
		return model.RecognitionStatus{}, err
	}
	return st, nil
}

func (g *recognitionGateway) ResetSession(ctx context.Context) error {
	_, err := g.c.doJSON(ctx, http.MethodPost, "/api/reset_session", nil, nil)
	return err
}
