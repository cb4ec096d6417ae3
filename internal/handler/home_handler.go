package handler

import (
	"net/http"

	"github.com/vitor/quaintstore/internal/middleware"
	"github.com/vitor/quaintstore/internal/model"
)

// homeResponse はトップページのビューコンテキスト。
type homeResponse struct {
	Title   string        `json:"title"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

// userResponse はログインユーザーの公開フィールド。
// パスワードハッシュは決して含めない。
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

func toUserResponse(u *model.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Admin: u.Admin,
	}
}

// HomeHandler はトップページのHTTPハンドラー。
// ログイン・ログアウトのリダイレクト先で、クエリパラメータで運ばれた
// フラッシュメッセージをRequestScope経由で返す。
type HomeHandler struct{}

// NewHomeHandler はHomeHandlerを生成する。
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home はトップページのビューコンテキストを返す。
// errorクエリパラメータ付きで遷移してきた場合は403を返す。
// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	status := http.StatusOK
	if scope.Error != "" {
		status = http.StatusForbidden
	}

	writeJSON(w, status, homeResponse{
		Title:   scope.Title,
		Message: scope.Message,
		Error:   scope.Error,
		User:    toUserResponse(scope.User),
	})
}
