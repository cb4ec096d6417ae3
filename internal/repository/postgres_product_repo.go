package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vitor/quaintstore/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
// queryTimeoutが0以下の場合はデフォルトの上限時間を使用する。
func NewPostgresProductRepo(db *sql.DB, queryTimeout time.Duration) *PostgresProductRepo {
	return &PostgresProductRepo{db: db, queryTimeout: queryTimeout}
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	product := &model.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price_cents, created_at, updated_at
		 FROM products WHERE id = $1`,
		id,
	).Scan(&product.ID, &product.Name, &product.Description, &product.PriceCents, &product.CreatedAt, &product.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// SearchByNamePrefix は商品名の前方一致で商品を検索する。
// LIKEパターンはプレースホルダ経由で束縛し、入力中のワイルドカード文字はエスケープする。
func (r *PostgresProductRepo) SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]*model.Product, error) {
	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	pattern := escapeLikePattern(prefix) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price_cents, created_at, updated_at
		 FROM products
		 WHERE name LIKE $1 ESCAPE '\'
		 ORDER BY name
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p := &model.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// ApplyPatch は許可リストに含まれるフィールドのみを更新する。
// SET句はProductPatchの非nilフィールドから明示的に構築し、
// リクエスト由来の任意のカラム名がSQLに到達することはない。
func (r *PostgresProductRepo) ApplyPatch(ctx context.Context, id string, patch model.ProductPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, fmt.Errorf("product patch has no fields to update")
	}

	ctx, cancel := boundCtx(ctx, r.queryTimeout)
	defer cancel()

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to patch product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// escapeLikePattern はLIKEパターン内のワイルドカード文字をエスケープする。
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// compile-time interface check
var _ ProductRepository = (*PostgresProductRepo)(nil)
