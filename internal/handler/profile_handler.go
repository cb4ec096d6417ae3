package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vitor/quaintstore/internal/authz"
	"github.com/vitor/quaintstore/internal/middleware"
	"github.com/vitor/quaintstore/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// UpdateProfile は本人のプロフィールを許可リストのフィールドのみで更新する。
	UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) error
}

// ProfileHandler はプロフィールのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// updateProfileRequest はプロフィール更新リクエストのボディ。
// 対象ユーザーIDは受け取らない。常にコンテキストの本人が対象。
type updateProfileRequest struct {
	Name *string `json:"name"`
}

// Profile は本人のプロフィールを返す。未ログインの場合はトップへリダイレクトする。
// GET /profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if !authz.Authenticated(scope) {
		redirectWithError(w, r, "You must be logged in")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Title string        `json:"title"`
		User  *userResponse `json:"user"`
	}{
		Title: "Profile",
		User:  toUserResponse(scope.User),
	})
}

// UpdateProfile は本人の表示名を更新する。
// PATCH /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if !authz.Authenticated(scope) {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	patch := model.ProfilePatch{Name: req.Name}

	if err := h.service.UpdateProfile(r.Context(), scope.User.ID, patch); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
