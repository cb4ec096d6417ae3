package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vitor/quaintstore/internal/middleware"
	"github.com/vitor/quaintstore/internal/model"
)

// loginFailureMessage は認証失敗時のユーザー向けメッセージ。
// メールアドレスとパスワードのどちらが誤っていたかは開示しない。
const loginFailureMessage = "Invalid email or password"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は認証に成功するとセッションを返す。失敗時は(nil, nil)。
	Login(ctx context.Context, email, password string) (*model.Session, error)
	// Logout はセッションを破棄する。存在しないトークンは何もしない。
	Logout(ctx context.Context, token string) error
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
}

// AuthHandler はログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

// sessionCookie はセッショントークンを載せたCookieを組み立てる。
// Max-Age/Expiresは設定しない。有効期限はサーバー側レコードだけで管理し、
// 失効したトークンのCookieは識別解決で匿名扱いになる。
func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// clearedSessionCookie は即時失効するCookieを返す。ログアウト時に使う。
func (h *AuthHandler) clearedSessionCookie() *http.Cookie {
	c := h.sessionCookie("")
	c.MaxAge = -1
	return c
}

// Login はフォームの認証情報を検証し、セッションCookieを設定してトップへリダイレクトする。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, loginFailureMessage)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		redirectWithError(w, r, loginFailureMessage)
		return
	}

	session, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		slog.Error("login failed", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	if session == nil {
		// 認証失敗。未知のメールと誤ったパスワードで応答を変えない。
		redirectWithError(w, r, loginFailureMessage)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.Token))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout は現在のセッションを破棄し、Cookieをクリアしてトップへリダイレクトする。
// セッションが存在しなくても常に成功する。
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			// 破棄に失敗してもCookieはクリアする
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
		}
	}

	http.SetCookie(w, h.clearedSessionCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
