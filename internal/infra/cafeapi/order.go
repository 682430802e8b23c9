package cafeapi

import (
	"context"
	"net/http"
	"strings"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/pkg/errors"
)

type orderGateway struct {
	c *Client
}

func NewOrderGateway(c *Client) repo.OrderGateway {
	return &orderGateway{c: c}
}

type purchaseResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Total   *model.Rupiah `json:"total"`
	Error   string        `json:"error"`
}

func (g *orderGateway) SubmitOrder(ctx context.Context, req model.OrderRequest) (int64, error) {
	var out purchaseResponse
	status, err := g.c.doJSON(ctx, http.MethodPost, "/api/purchase", req, &out)
	if err != nil {
		return 0, err
	}

	// 2xxでも error が入っていれば拒否扱い
	if strings.TrimSpace(out.Error) != "" {
		return 0, &repo.RejectedError{Status: status, Message: out.Error}
	}
	if out.Total == nil {
		return 0, errors.Wrap(repo.ErrUnavailable, "POST /api/purchase: total missing")
	}
	return out.Total.Int64(), nil
}

type legacyPurchaseRequest struct {
	Purchase string `json:"purchase"`
}

func (g *orderGateway) SubmitLegacyPurchase(ctx context.Context, purchase string) error {
	_, err := g.c.doJSON(ctx, http.MethodPost, "/purchase", legacyPurchaseRequest{Purchase: purchase}, nil)
	return err
}
