// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword は平文パスワードをbcryptでハッシュ化する。
// ユーザー作成は管理ツール・シード側の責務だが、ハッシュ形式は
// 検証側と同一パッケージで管理する。
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword は平文パスワードと保存済みハッシュを定数時間で比較する。
// 一致する場合はtrueを返す。平文同士の等値比較は行わない。
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
