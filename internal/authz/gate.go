// Package authz は更新系操作を保護する権限判定を提供する。
//
// 判定はRequestScopeのみに依存する純粋関数で、HTTPレスポンスは書き込まない。
// 拒否時のレスポンス生成は呼び出し側ハンドラーの責務。
package authz

import "github.com/vitor/quaintstore/internal/model"

// Authenticated はログイン済みユーザーが存在する場合にtrueを返す。
func Authenticated(scope *model.RequestScope) bool {
	return scope.Authenticated()
}

// Admin はログイン済みかつ管理者フラグが立っている場合にtrueを返す。
// 判定対象は明示的なadminフラグのみで、表示名などの別シグナルは使わない。
func Admin(scope *model.RequestScope) bool {
	return scope.Authenticated() && scope.IsAdmin
}

// Owner はログイン済みかつ対象リソースの所有者本人である場合にtrueを返す。
func Owner(scope *model.RequestScope, resourceOwnerID string) bool {
	return scope.Authenticated() && scope.User.ID == resourceOwnerID
}
