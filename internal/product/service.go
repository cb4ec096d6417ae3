// Package product は商品管理のドメインロジックを提供する。
package product

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vitor/quaintstore/internal/model"
	"github.com/vitor/quaintstore/internal/repository"
)

const (
	// defaultSearchLimit はlimit未指定時の検索結果件数。
	defaultSearchLimit = 10
	// maxSearchLimit は1回の検索で返す最大件数。
	maxSearchLimit = 100
	// maxNameLength は商品名の最大文字数。
	maxNameLength = 200
)

// Sanitizer は商品説明文のHTMLサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// Service は商品管理のサービス層。
type Service struct {
	products  repository.ProductRepository
	sanitizer Sanitizer
}

// NewService はServiceを生成する。
func NewService(products repository.ProductRepository, sanitizer Sanitizer) *Service {
	return &Service{
		products:  products,
		sanitizer: sanitizer,
	}
}

// Get は指定IDの商品を取得する。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Search は商品名の前方一致で商品を検索する。
// limitが0以下の場合はデフォルト件数、上限を超える場合は上限に丸める。
func (s *Service) Search(ctx context.Context, prefix string, limit int) ([]*model.Product, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	products, err := s.products.SearchByNamePrefix(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// ApplyPatch は商品を許可リストのフィールドのみで更新する。
// 説明文は保存前にサニタイズする。対象商品が存在しない場合は
// PRODUCT_NOT_FOUNDエラーを返す。
func (s *Service) ApplyPatch(ctx context.Context, id string, patch model.ProductPatch) error {
	if patch.IsEmpty() {
		return model.NewEmptyPatchError()
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.NewInvalidNameError("商品名が空です")
		}
		if utf8.RuneCountInString(name) > maxNameLength {
			return model.NewInvalidNameError(fmt.Sprintf("%d文字を超えています", maxNameLength))
		}
		patch.Name = &name
	}

	if patch.Description != nil && s.sanitizer != nil {
		sanitized := s.sanitizer.Sanitize(*patch.Description)
		patch.Description = &sanitized
	}

	updated, err := s.products.ApplyPatch(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("failed to patch product: %w", err)
	}
	if !updated {
		return model.NewProductNotFoundError(id)
	}

	return nil
}
