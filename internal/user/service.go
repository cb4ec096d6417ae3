// Package user はプロフィール管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vitor/quaintstore/internal/model"
	"github.com/vitor/quaintstore/internal/repository"
)

// maxNameLength は表示名の最大文字数。
const maxNameLength = 100

// Service はプロフィール管理のサービス層。
type Service struct {
	users repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// UpdateProfile は本人のプロフィールを更新する。
// 変更対象は表示名のみで、id・email・パスワード・adminフラグは変更しない。
// userIDは常にリクエストコンテキストで解決された本人のIDであること。
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) error {
	if patch.IsEmpty() {
		return model.NewEmptyPatchError()
	}

	name := strings.TrimSpace(*patch.Name)
	if name == "" {
		return model.NewInvalidNameError("表示名が空です")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return model.NewInvalidNameError(fmt.Sprintf("%d文字を超えています", maxNameLength))
	}

	updated, err := s.users.UpdateName(ctx, userID, name)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if !updated {
		return model.NewUserNotFoundError()
	}

	slog.Info("profile updated", slog.String("user_id", userID))
	return nil
}
