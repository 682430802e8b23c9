package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk/internal/activitylog"
	"kiosk/internal/config"
	"kiosk/internal/domain/model"
	"kiosk/internal/handler"
	"kiosk/internal/infra/cafeapi"
	"kiosk/internal/infra/db"
	infraRepo "kiosk/internal/infra/repository"
	repo "kiosk/internal/repository"
	"kiosk/internal/server"
	"kiosk/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	sessionIdleTTL = 30 * time.Minute
	sweepInterval  = 5 * time.Minute
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.IsProd() {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("invalid LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	//.env は無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}

	log := newLogger(cfg)
	activity := activitylog.New(cfg.MaxLogs)
	log.AddHook(activity)

	//控え用DB（DB_DRIVER が空なら使わない）
	gormDB, err := db.Connect(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.WithError(err).Fatal("db connect")
	}
	var receipts repo.ReceiptRepository
	if gormDB != nil {
		if err := gormDB.AutoMigrate(&model.Receipt{}); err != nil {
			log.WithError(err).Fatal("db migrate")
		}
		receipts = infraRepo.NewReceiptGormRepository(gormDB)
	}

	//カフェAPI
	client := cafeapi.New(cfg.CafeAPIURL, cfg.APITimeout, log)
	orders := cafeapi.NewOrderGateway(client)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	sessions := usecase.NewSessionRegistry()

	//Usecase生成
	menuUC := usecase.NewMenuUsecase(cafeapi.NewMenuCatalog(client), log)
	cartUC := usecase.NewCartUsecase(sessions, menuUC, log)
	recognitionUC := usecase.NewRecognitionUsecase(cafeapi.NewRecognitionGateway(client), sessions, cfg.StatusPollInterval, log)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, orders, receipts, recognitionUC, idGen, clock, log)
	moodUC := usecase.NewMoodUsecase(cafeapi.NewMoodGateway(client), cartUC, log)
	staffUC := usecase.NewStaffUsecase(orders, receipts, activity, log)

	//Handler生成
	e := server.New(cfg, log, server.Handlers{
		Health: handler.NewHealthHandler(),
		Kiosk:  handler.NewKioskHandler(menuUC, cartUC, checkoutUC, recognitionUC),
		Mood:   handler.NewMoodHandler(moodUC),
		Staff:  handler.NewStaffHandler(staffUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go recognitionUC.Run(ctx)
	go sweepSessions(ctx, sessions, log)

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.WithError(err).Fatal("server")
	}
}

// 放置されたキオスクセッションのカートを捨てる
func sweepSessions(ctx context.Context, sessions *usecase.SessionRegistry, log logrus.FieldLogger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(sessionIdleTTL); n > 0 {
				log.WithField("dropped", n).Debug("idle sessions swept")
			}
		}
	}
}
