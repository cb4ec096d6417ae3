// Package model はドメインモデルを定義する。
package model

import "time"

// User はストアの登録ユーザーを表す。
// emailは全ユーザーで一意。ユーザーの作成はアプリケーション外
// （マイグレーション・管理ツール）で行われる。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
// Tokenは暗号的に安全な乱数から生成された推測不可能な値。
// 1ユーザーが複数の有効なセッションを同時に保持できる。
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ProfilePatch はプロフィール更新で変更可能なフィールドの許可リスト。
// nilフィールドは変更しない。対象ユーザーIDはリクエストボディからは受け取らず、
// 常にリクエストコンテキストの本人とする。
type ProfilePatch struct {
	Name *string
}

// IsEmpty は変更対象フィールドが1つもないことを判定する。
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil
}
