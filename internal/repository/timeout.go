package repository

import (
	"context"
	"time"
)

// defaultQueryTimeout は設定が与えられなかった場合のストア呼び出し上限時間。
const defaultQueryTimeout = 5 * time.Second

// boundCtx はストア呼び出しに上限時間を設ける。
// 接続先が応答しない場合でもリクエストが無期限に待たされることを防ぐ。
func boundCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, d)
}
