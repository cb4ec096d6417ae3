package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitor/quaintstore/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
// queryTimeoutが0以下の場合はデフォルトの上限時間を使用する。
func NewPostgresUserRepo(db *sql.DB, queryTimeout time.Duration) *PostgresUserRepo {
	return &PostgresUserRepo{db: db, queryTimeout: queryTimeout}
}

// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, admin, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Admin, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, admin, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Admin, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// UpdateName は指定ユーザーの表示名のみを更新する。
// id、email、password_hash、adminフラグは変更しない。
func (r *PostgresUserRepo) UpdateName(ctx context.Context, id, name string) (bool, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, updated_at = now() WHERE id = $2`,
		name, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update user name: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
