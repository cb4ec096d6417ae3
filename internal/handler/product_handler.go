package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vitor/quaintstore/internal/authz"
	"github.com/vitor/quaintstore/internal/middleware"
	"github.com/vitor/quaintstore/internal/model"
)

// ProductServiceInterface は商品ハンドラーが必要とするサービスインターフェース。
type ProductServiceInterface interface {
	// Get は指定IDの商品を取得する。見つからない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.Product, error)
	// Search は商品名の前方一致で商品を検索する。
	Search(ctx context.Context, prefix string, limit int) ([]*model.Product, error)
	// ApplyPatch は商品を許可リストのフィールドのみで更新する。
	ApplyPatch(ctx context.Context, id string, patch model.ProductPatch) error
}

// ProductHandler は商品のHTTPハンドラー。
type ProductHandler struct {
	service ProductServiceInterface
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(service ProductServiceInterface) *ProductHandler {
	return &ProductHandler{service: service}
}

// updateProductRequest は商品更新リクエストのボディ。
// ここに無いフィールドは受け取らず、UPDATE対象にもならない。
type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// productResponse は商品情報のAPIレスポンス。
type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
	}
}

// ListProducts は商品名の前方一致検索の結果を返す。
// GET /products?search=xxx&limit=10
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
				Code:     model.ErrCodeInvalidLimit,
				Message:  "limitには整数を指定してください。",
				Category: "validation",
				Action:   "limitパラメータを確認してください。",
			})
			return
		}
		limit = n
	}

	products, err := h.service.Search(r.Context(), search, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]productResponse, len(products))
	for i, p := range products {
		results[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, struct {
		Title    string            `json:"title"`
		Search   string            `json:"search"`
		Products []productResponse `json:"products"`
	}{
		Title:    "Products",
		Search:   search,
		Products: results,
	})
}

// GetProduct は商品詳細を返す。
// GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.service.Get(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProduct は商品を更新する。管理者のみ実行できる。
// PATCH /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if !authz.Admin(scope) {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	productID := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	patch := model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.service.ApplyPatch(r.Context(), productID, patch); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
