package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
	"kiosk/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var checkoutNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newCheckout(orders *OrderGatewayMock, receipts repo.ReceiptRepository) (*usecase.CheckoutUsecase, *usecase.SessionRegistry) {
	sessions := usecase.NewSessionRegistry()
	status := fixedStatus{st: model.RecognitionStatus{Status: model.RecognitionRecognized, CustomerID: "cust_1"}}
	u := usecase.NewCheckoutUsecase(sessions, orders, receipts, status, fixedIDs{id: "r-1"}, fixedClock{t: checkoutNow}, quietLogger())
	return u, sessions
}

func TestCheckoutUsecase_PlaceOrder_Success(t *testing.T) {
	orders := new(OrderGatewayMock)
	receipts := new(ReceiptRepoMock)
	u, sessions := newCheckout(orders, receipts)

	c := sessions.Cart("s1")
	_, err := c.CommitToCart(americano, 2)
	require.NoError(t, err)
	require.NoError(t, c.QuickAdd(latte))

	want := model.OrderRequest{Orders: []model.OrderLine{{MenuID: 1, Quantity: 2}, {MenuID: 2, Quantity: 1}}}
	orders.On("SubmitOrder", mock.Anything, want).Return(int64(80000), nil).Once()
	receipts.On("Create", mock.Anything, mock.MatchedBy(func(r model.Receipt) bool {
		return r.ID == "r-1" && r.SessionID == "s1" && r.CustomerID == "cust_1" &&
			r.Total == 80000 && r.ClientTotal == 80000 && r.ItemCount == 3 &&
			r.CreatedAt.Equal(checkoutNow) &&
			r.LinesJSON == `[{"menu_id":1,"quantity":2},{"menu_id":2,"quantity":1}]`
	})).Return(nil).Once()

	out, err := u.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "success", out.Status)
	assert.Equal(t, int64(80000), out.Total)
	assert.Equal(t, "Rp 80.000", out.TotalLabel)
	assert.Len(t, out.Lines, 2)
	assert.Equal(t, "r-1", out.ReceiptID)
	assert.Equal(t, 3, out.ReturnAfterSeconds)

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Submitting())
	orders.AssertExpectations(t)
	receipts.AssertExpectations(t)
}

func TestCheckoutUsecase_PlaceOrder_EmptyCartNoNetwork(t *testing.T) {
	orders := new(OrderGatewayMock)
	u, _ := newCheckout(orders, nil)

	_, err := u.PlaceOrder(context.Background(), "s1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_PlaceOrder_TransportFailureKeepsCart(t *testing.T) {
	orders := new(OrderGatewayMock)
	u, sessions := newCheckout(orders, nil)
	c := sessions.Cart("s1")
	require.NoError(t, c.QuickAdd(americano))

	orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(int64(0), errors.Wrap(repo.ErrUnavailable, "timeout"))

	_, err := u.PlaceOrder(context.Background(), "s1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(25000), c.Total())
	assert.False(t, c.Submitting())
}

func TestCheckoutUsecase_PlaceOrder_RejectedShowsServerMessage(t *testing.T) {
	orders := new(OrderGatewayMock)
	u, sessions := newCheckout(orders, nil)
	require.NoError(t, sessions.Cart("s1").QuickAdd(americano))

	orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(int64(0), &repo.RejectedError{Status: http.StatusBadRequest, Message: "No customer session"})

	_, err := u.PlaceOrder(context.Background(), "s1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Status)
	assert.Equal(t, "No customer session", he.Message)
	assert.Equal(t, 1, sessions.Cart("s1").Len())
}

func TestCheckoutUsecase_PlaceOrder_InFlightIs409(t *testing.T) {
	orders := new(OrderGatewayMock)
	u, sessions := newCheckout(orders, nil)
	c := sessions.Cart("s1")
	require.NoError(t, c.QuickAdd(americano))
	require.NoError(t, c.BeginSubmit())

	_, err := u.PlaceOrder(context.Background(), "s1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)

	assert.True(t, c.Submitting())
}

func TestCheckoutUsecase_PlaceOrder_ServerTotalWinsAndJournalFailureIgnored(t *testing.T) {
	orders := new(OrderGatewayMock)
	receipts := new(ReceiptRepoMock)
	u, sessions := newCheckout(orders, receipts)
	require.NoError(t, sessions.Cart("s1").QuickAdd(americano))

	orders.On("SubmitOrder", mock.Anything, mock.Anything).Return(int64(20000), nil)
	receipts.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	out, err := u.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), out.Total)
	assert.Empty(t, out.ReceiptID)
	assert.Equal(t, 0, sessions.Cart("s1").Len())
}

func TestCheckoutUsecase_PlaceOrder_AddDuringSubmitIsRejected(t *testing.T) {
	orders := new(OrderGatewayMock)
	u, sessions := newCheckout(orders, nil)

	cat := new(MenuCatalogMock)
	cat.On("GetMenu", mock.Anything).Return(testMenu(), nil)
	cartUC := usecase.NewCartUsecase(sessions, usecase.NewMenuUsecase(cat, quietLogger()), quietLogger())

	ctx := context.Background()
	_, err := cartUC.QuickAddByID(ctx, "s1", 1)
	require.NoError(t, err)

	want := model.OrderRequest{Orders: []model.OrderLine{{MenuID: 1, Quantity: 1}}}
	var addErr, clearErr error
	orders.On("SubmitOrder", mock.Anything, want).
		Run(func(args mock.Arguments) {
			// 送信待ちの間に別タップが入る
			_, addErr = cartUC.QuickAddByID(ctx, "s1", 2)
			_, clearErr = cartUC.ClearCart(ctx, "s1")
		}).
		Return(int64(25000), nil).Once()

	out, err := u.PlaceOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), out.Total)

	for _, e := range []error{addErr, clearErr} {
		he, ok := usecase.AsHTTPError(e)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Status)
	}

	// 成功後のクリアで消える商品がない
	assert.Equal(t, 0, sessions.Cart("s1").Len())
	_, err = cartUC.QuickAddByID(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Cart("s1").Len())
	orders.AssertExpectations(t)
}
