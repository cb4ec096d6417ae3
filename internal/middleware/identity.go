// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vitor/quaintstore/internal/model"
)

// SessionCookieName はセッショントークンを保持するCookieの名前。
const SessionCookieName = "session"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// scopeContextKey はリクエストコンテキストにRequestScopeを格納するためのキー。
var scopeContextKey = contextKey("request_scope")

// SessionResolver はセッショントークンからユーザーを解決するインターフェース。
// トークンが未知・期限切れの場合は(nil, nil)を返すこと。
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.User, error)
}

// NewIdentityMiddleware はCookieから呼び出し元の識別情報を解決し、
// RequestScopeとしてリクエストコンテキストに公開するミドルウェアを返す。
//
// Cookieが無い・トークンが未知の場合は匿名スコープを公開し、リクエストは
// 拒否しない。認証の要否判定は後段の各ハンドラーの権限チェックに委ねる。
// ストア障害でセッションを解決できなかった場合のみ500を返す。
func NewIdentityMiddleware(resolver SessionResolver, defaultTitle string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := &model.RequestScope{
				Title:   defaultTitle,
				Message: r.URL.Query().Get("message"),
				Error:   r.URL.Query().Get("error"),
			}

			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				user, err := resolver.ResolveSession(r.Context(), cookie.Value)
				if err != nil {
					// 未ログインではなくストア障害。このリクエストは失敗させる。
					slog.Error("failed to resolve session",
						slog.String("error", err.Error()),
					)
					WriteInternalServerError(w)
					return
				}
				if user != nil {
					scope.User = user
					scope.IsAdmin = user.Admin
				}
			}

			ctx := context.WithValue(r.Context(), scopeContextKey, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFromContext はリクエストコンテキストからRequestScopeを取得する。
// セッション解決ミドルウェアを通過したリクエストでのみ有効。
func ScopeFromContext(ctx context.Context) (*model.RequestScope, error) {
	scope, ok := ctx.Value(scopeContextKey).(*model.RequestScope)
	if !ok || scope == nil {
		return nil, fmt.Errorf("request scope not found in context")
	}
	return scope, nil
}

// ContextWithScope はコンテキストにRequestScopeを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithScope(ctx context.Context, scope *model.RequestScope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}
