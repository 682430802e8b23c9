package usecase_test

import (
	"context"
	"io"
	"time"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type MenuCatalogMock struct{ mock.Mock }

func (m *MenuCatalogMock) GetMenu(ctx context.Context) (model.Menu, error) {
	args := m.Called(ctx)
	menu, _ := args.Get(0).(model.Menu)
	return menu, args.Error(1)
}

type OrderGatewayMock struct{ mock.Mock }

func (m *OrderGatewayMock) SubmitOrder(ctx context.Context, req model.OrderRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderGatewayMock) SubmitLegacyPurchase(ctx context.Context, purchase string) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

type RecognitionGatewayMock struct{ mock.Mock }

func (m *RecognitionGatewayMock) Status(ctx context.Context) (model.RecognitionStatus, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(model.RecognitionStatus)
	return st, args.Error(1)
}

func (m *RecognitionGatewayMock) ResetSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MoodGatewayMock struct{ mock.Mock }

func (m *MoodGatewayMock) Presets(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(map[string]string)
	return p, args.Error(1)
}

func (m *MoodGatewayMock) Recommend(ctx context.Context, userInput string) (model.MoodResponse, error) {
	args := m.Called(ctx, userInput)
	res, _ := args.Get(0).(model.MoodResponse)
	return res, args.Error(1)
}

func (m *MoodGatewayMock) RecommendPreset(ctx context.Context, key string) (model.MoodResponse, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).(model.MoodResponse)
	return res, args.Error(1)
}

type ReceiptRepoMock struct{ mock.Mock }

func (m *ReceiptRepoMock) Create(ctx context.Context, r model.Receipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReceiptRepoMock) List(ctx context.Context, f repo.ReceiptFilter) ([]model.Receipt, error) {
	args := m.Called(ctx, f)
	rs, _ := args.Get(0).([]model.Receipt)
	return rs, args.Error(1)
}

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedStatus struct{ st model.RecognitionStatus }

func (s fixedStatus) Current() model.RecognitionStatus { return s.st }

// =====================
// Fixtures
// =====================

var (
	americano = model.MenuItem{ID: 1, Name: "Americano", Price: 25000}
	latte     = model.MenuItem{ID: 2, Name: "Latte", Price: 30000}
)

func testMenu() model.Menu {
	return model.Menu{AllMenu: []model.MenuItem{americano, latte}}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
