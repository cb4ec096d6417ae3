// Package config は環境変数からのアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultTitle はビューに渡すデフォルトのページタイトル。
const DefaultTitle = "A Quaint Little Store"

// Config はプロセス全体の設定。起動時に1回だけLoadし、以後は読み取り専用。
type Config struct {
	// Database
	DatabaseURL  string
	StoreTimeout time.Duration

	// Session
	SessionTTL time.Duration

	// Rate Limit（毎分あたりの許容リクエスト数）
	RateLimitGeneral int
	RateLimitLogin   int

	// Server
	ServerPort  string
	MetricsPort string
	BaseURL     string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数を読み取りConfigを構築する。
// DATABASE_URLとBASE_URLは必須。欠けている変数はまとめてエラーに含める。
func Load() (*Config, error) {
	var missing []string
	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		DatabaseURL:       require("DATABASE_URL"),
		BaseURL:           require("BASE_URL"),
		StoreTimeout:      envDuration("STORE_TIMEOUT", 5*time.Second),
		SessionTTL:        envDuration("SESSION_TTL", 24*time.Hour),
		RateLimitGeneral:  envInt("RATE_LIMIT_GENERAL", 120),
		RateLimitLogin:    envInt("RATE_LIMIT_LOGIN", 10),
		ServerPort:        envString("SERVER_PORT", "8080"),
		MetricsPort:       envString("METRICS_PORT", "9090"),
		CookieDomain:      envString("COOKIE_DOMAIN", ""),
		CORSAllowedOrigin: envString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// httpsで公開される環境だけSecure属性付きCookieを発行する
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")

	return cfg, nil
}

// 以下のヘルパーは不正な値を警告なしでデフォルトに落とす。
// 設定ミスで起動を止めるほどの項目は必須変数だけにしている。

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
