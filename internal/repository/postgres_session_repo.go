package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitor/quaintstore/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
type PostgresSessionRepo struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
// queryTimeoutが0以下の場合はデフォルトの上限時間を使用する。
func NewPostgresSessionRepo(db *sql.DB, queryTimeout time.Duration) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db, queryTimeout: queryTimeout}
}

// Create はセッションを作成する。
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindUserByToken はトークンに対応するセッションの所有ユーザーをJOINで取得する。
// トークンが未知または期限切れの場合はnilを返す（エラーではない）。
func (r *PostgresSessionRepo) FindUserByToken(ctx context.Context, token string) (*model.User, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.password_hash, u.name, u.admin, u.created_at, u.updated_at
		 FROM users u
		 INNER JOIN sessions s ON u.id = s.user_id
		 WHERE s.token = $1 AND s.expires_at > now()`,
		token,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Admin, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by session token: %w", err)
	}

	return user, nil
}

// DeleteByToken は指定トークンのセッションを削除する。
// 存在しないトークンの削除は何もしない。
func (r *PostgresSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
