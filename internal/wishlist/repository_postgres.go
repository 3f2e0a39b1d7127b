package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	addWishlistQuery = `
		UPDATE users
		SET wishlist_product_ids = array_append(coalesce(wishlist_product_ids, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND NOT ($2 = ANY(coalesce(wishlist_product_ids, ARRAY[]::integer[])))
		RETURNING wishlist_product_ids`

	removeWishlistQuery = `
		UPDATE users
		SET wishlist_product_ids = array_remove(coalesce(wishlist_product_ids, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND ($2 = ANY(coalesce(wishlist_product_ids, ARRAY[]::integer[])))
		RETURNING wishlist_product_ids`

	getWishlistIDsQuery = `
		SELECT coalesce(wishlist_product_ids, ARRAY[]::integer[])
		FROM users
		WHERE user_id = $1`

	getWishlistProductsQuery = `
		SELECT product_id, product_name, product_price, product_img, species
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)`
)

func (r *PostgresRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(addWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.conflictOrMissing(userID, ErrAlreadyAdded)
		}
		return nil, err
	}
	return toIntSlice(arr), nil
}

func (r *PostgresRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.conflictOrMissing(userID, ErrNotOnList)
		}
		return nil, err
	}
	return toIntSlice(arr), nil
}

func (r *PostgresRepository) Get(userID int) ([]product.Summary, error) {
	var arr pq.Int64Array
	if err := r.db.QueryRow(getWishlistIDsQuery, userID).Scan(&arr); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(arr) == 0 {
		return []product.Summary{}, nil
	}

	rows, err := r.db.Query(getWishlistProductsQuery, pq.Array(toIntSlice(arr)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []product.Summary{}
	for rows.Next() {
		var item product.Summary
		var price string
		if err := rows.Scan(&item.ProductID, &item.Name, &price, &item.ImageRef, &item.Species); err != nil {
			return nil, err
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// conflictOrMissing distinguishes "no such user" from "the guarded update
// matched nothing" after an ErrNoRows on Add or Remove.
func (r *PostgresRepository) conflictOrMissing(userID int, conflict error) error {
	var exists int
	if err := r.db.QueryRow(`SELECT 1 FROM users WHERE user_id = $1`, userID).Scan(&exists); err == sql.ErrNoRows {
		return ErrNotFound
	}
	return conflict
}

func toIntSlice(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
