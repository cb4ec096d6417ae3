package model

import "time"

// Product はストアで販売する商品を表す。
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch は商品更新で変更可能なフィールドの許可リスト。
// nilフィールドは変更しない。リクエストボディを任意のカラム集合として
// そのままUPDATEに渡すことは禁止で、必ずこの型を経由する。
type ProductPatch struct {
	Name        *string
	Description *string
}

// IsEmpty は変更対象フィールドが1つもないことを判定する。
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}
