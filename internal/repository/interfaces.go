// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/vitor/quaintstore/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// UpdateName は指定ユーザーの表示名のみを更新する。
	// 対象ユーザーが存在しない場合はfalseを返す。
	UpdateName(ctx context.Context, id, name string) (bool, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error

	// FindUserByToken はトークンに対応するセッションの所有ユーザーを
	// JOINで取得する。トークンが未知・期限切れの場合はnilを返す（エラーではない）。
	FindUserByToken(ctx context.Context, token string) (*model.User, error)

	// DeleteByToken は指定トークンのセッションを削除する。
	// 存在しないトークンの削除は何もしない。
	DeleteByToken(ctx context.Context, token string) error
}

// ProductRepository は商品データの永続化インターフェース。
type ProductRepository interface {
	// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// SearchByNamePrefix は商品名の前方一致で商品を検索する。
	// limitで結果件数を制限する。prefixが空の場合は全商品を対象とする。
	SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]*model.Product, error)

	// ApplyPatch は許可リストに含まれるフィールドのみを更新する。
	// 対象商品が存在しない場合はfalseを返す。
	ApplyPatch(ctx context.Context, id string, patch model.ProductPatch) (bool, error)
}
