// Package auth はセッションの発行・解決・破棄と認証処理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitor/quaintstore/internal/model"
	"github.com/vitor/quaintstore/internal/repository"
	"github.com/vitor/quaintstore/internal/security"
)

// Metrics はログイン・セッション操作の計測インターフェース。
// nilの場合は計測をスキップする。
type Metrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordSessionRevoked()
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionTTL time.Duration // セッション有効期間
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	config   ServiceConfig
	metrics  Metrics
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	config ServiceConfig,
	metrics Metrics,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		config:   config,
		metrics:  metrics,
	}
}

// Login はメールアドレスとパスワードを検証し、一致すればセッションを発行する。
// 認証に失敗した場合は(nil, nil)を返す。どちらのフィールドが誤っていたかは
// 呼び出し側にもログにも開示しない。
// パスワードはbcryptハッシュとの定数時間比較で検証する。
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user == nil || !security.VerifyPassword(user.PasswordHash, password) {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		slog.Info("login rejected")
		return nil, nil
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}
	slog.Info("user logged in", slog.String("user_id", user.ID))

	return session, nil
}

// ResolveSession はトークンに対応するログインユーザーを返す。
// トークンが未知・期限切れの場合は(nil, nil)を返す。これはエラーではなく
// 「未ログイン」を意味する。ストア障害のみerrorを返す。
func (s *Service) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := s.sessions.FindUserByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return user, nil
}

// Logout はセッションを破棄する。存在しないトークンの破棄は何もしない。
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordSessionRevoked()
	}
	slog.Info("session revoked")
	return nil
}

// createSession はセッションを作成し永続化する。
// 同一ユーザーが複数の有効なセッションを持つことを許容する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.SessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionToken は暗号的に安全なセッショントークンを生成する。
// 256ビットの乱数をhexエンコードするため、Cookie値として安全に使え、
// 衝突確率は実用上無視できる。
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
