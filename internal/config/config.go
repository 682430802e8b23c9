package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはキオスク全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	CafeAPIURL string        // カフェAPIのベースURL（http://localhost:5000）
	APITimeout time.Duration // カフェAPI呼び出し1回の上限（10s）

	StatusPollInterval time.Duration // 顔認識ステータスの問い合わせ間隔（1s）

	SessionSecret string // キオスクセッションcookieの署名シークレット

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error
	MaxLogs  int    // スタッフ画面に出す活動ログの件数（20）

	DBDriver string // postgres/sqlite/空（控えを残さない）
	DBSource string // DSN またはファイルパス

	StaffPINHash string // スタッフPINのbcryptハッシュ（空ならスタッフ画面なし）
}

const (
	defaultAPITimeout   = 10 * time.Second
	defaultPollInterval = time.Second
	defaultMaxLogs      = 20
)

// Loadは環境変数
func Load() (Config, error) {
	apiTimeout, err := durationOr("API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return Config{}, err
	}
	poll, err := durationOr("STATUS_POLL_INTERVAL", defaultPollInterval)
	if err != nil {
		return Config{}, err
	}
	maxLogs, err := intOr("MAX_LOGS", defaultMaxLogs)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		CafeAPIURL: os.Getenv("CAFE_API_URL"),
		APITimeout: apiTimeout,

		StatusPollInterval: poll,

		SessionSecret: os.Getenv("SESSION_SECRET"),

		GoEnv:    envOr("GO_ENV", "dev"),
		LogLevel: envOr("LOG_LEVEL", "info"),
		MaxLogs:  maxLogs,

		DBDriver: os.Getenv("DB_DRIVER"),
		DBSource: envOr("DB_SOURCE", os.Getenv("DATABASE_URL")),

		StaffPINHash: os.Getenv("STAFF_PIN_HASH"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.CafeAPIURL == "" {
		return Config{}, fmt.Errorf("CAFE_API_URL is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	switch cfg.DBDriver {
	case "", "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite: %s", cfg.DBDriver)
	}

	return cfg, nil
}

// ":8080" の形にする
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
