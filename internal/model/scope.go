package model

// RequestScope は1リクエスト分の識別情報とビュー向け共通フィールドを保持する。
// リクエスト冒頭のセッション解決ミドルウェアが1回だけ構築し、
// リクエスト完了とともに破棄される。リクエスト間で共有してはならない。
type RequestScope struct {
	// User は解決済みのログインユーザー。匿名の場合はnil。
	User *User
	// IsAdmin はUserの管理者フラグから導出される。匿名の場合は常にfalse。
	IsAdmin bool

	// ビュー向けの共通フィールド。クエリパラメータから引き継がれる。
	Title   string
	Message string
	Error   string
}

// Authenticated はログイン済みユーザーが解決されているかを返す。
func (s *RequestScope) Authenticated() bool {
	return s != nil && s.User != nil
}
