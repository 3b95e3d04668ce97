package config

import (
	"fmt"
	"os"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	RedisAddr     string // クロージング一覧キャッシュ用（空ならキャッシュなし）
	RedisPassword string

	GoEnv string // dev/prod

	// キャンペーン再計算と抽選確定のワーカー周期
	WorkerInterval time.Duration
}

// Loadは環境変数から読む。DB接続情報はinfra/db側が直接読む。
func Load() (Config, error) {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		GoEnv:         os.Getenv("GO_ENV"),

		WorkerInterval: time.Minute,
	}

	if raw := os.Getenv("WORKER_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("WORKER_INTERVAL is invalid: %w", err)
		}
		cfg.WorkerInterval = d
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
