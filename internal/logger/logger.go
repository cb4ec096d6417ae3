// Package logger はJSON構造化ログの初期化を提供する。
// ログレベルはLOG_LEVEL環境変数（debug / info / warn / error）で制御し、
// 未設定時はinfoになる。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup はwに出力するJSONハンドラのslog.Loggerを返す。
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return slog.New(handler)
}

// SetupDefault はグローバルロガーをJSON出力に差し替える。
// wがnilの場合はos.Stdoutに出力する。
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
