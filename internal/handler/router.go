package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitor/quaintstore/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionResolver   middleware.SessionResolver
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	HTTPRecorder      middleware.HTTPRecorder // nil可
	Logger            *slog.Logger

	// サービス
	AuthService    AuthServiceInterface
	AuthConfig     AuthHandlerConfig
	ProfileService ProfileServiceInterface
	ProductService ProductServiceInterface

	// ビュー共通
	DefaultTitle string
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → SecurityHeaders → CORS → Identity → Logging → Metrics
//
// Identityミドルウェアは全リクエストでハンドラーより先に完了する。
// 認証の強制は行わず、匿名スコープを公開して各ハンドラーの権限チェックに委ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewIdentityMiddleware(deps.SessionResolver, deps.DefaultTitle))
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.HTTPRecorder))

	homeHandler := NewHomeHandler()
	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	profileHandler := NewProfileHandler(deps.ProfileService)
	productHandler := NewProductHandler(deps.ProductService)

	// トップページ（ログイン・ログアウトのリダイレクト先）
	r.Get("/", homeHandler.Home)

	// 認証（ログインのみ総当たり対策の専用レート制限を追加）
	if deps.RateLimiter != nil {
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
	} else {
		r.Post("/login", authHandler.Login)
	}
	r.Post("/logout", authHandler.Logout)

	// 認証が必要な操作とそうでない操作が混在するルート。
	// 認証の要否は各ハンドラー内の権限チェックで判定する。
	group := func(r chi.Router) {
		// プロフィール
		r.Get("/profile", profileHandler.Profile)
		r.Patch("/profile", profileHandler.UpdateProfile)

		// 商品
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productHandler.GetProduct)
				r.Patch("/", productHandler.UpdateProduct)
			})
		})
	}

	if deps.RateLimiter != nil {
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.GeneralMiddleware())
			group(r)
		})
	} else {
		r.Group(group)
	}

	return r
}
