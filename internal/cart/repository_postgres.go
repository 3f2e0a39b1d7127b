package cart

import (
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/lib/pq"
	"github.com/timberhaus/sawmill-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartItemsQuery = `
		SELECT p.product_id, p.product_name, p.product_price, p.product_img, p.species
		FROM products p
		WHERE p.product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], p.product_id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddToCart(userID int, productID int, qty int, updatedAt string) ([]CartItem, error) {
	return r.mutate(userID, updatedAt, func(m map[string]int) {
		key := strconv.Itoa(productID)
		newQty := m[key] + qty
		if newQty <= 0 {
			delete(m, key)
		} else {
			m[key] = newQty
		}
	})
}

func (r *PostgresRepository) SetQuantity(userID int, productID int, qty int, updatedAt string) ([]CartItem, error) {
	return r.mutate(userID, updatedAt, func(m map[string]int) {
		key := strconv.Itoa(productID)
		if qty < 1 {
			delete(m, key)
		} else {
			m[key] = qty
		}
	})
}

func (r *PostgresRepository) RemoveItem(userID int, productID int, updatedAt string) ([]CartItem, error) {
	return r.SetQuantity(userID, productID, 0, updatedAt)
}

func (r *PostgresRepository) GetCart(userID int) ([]CartItem, error) {
	m, err := r.loadCartMap(userID)
	if err != nil {
		return nil, err
	}
	return r.enrich(m)
}

func (r *PostgresRepository) ClearCart(userID int, updatedAt string) error {
	result, err := r.db.Exec(`UPDATE users SET cart = '{}', updated_at = $1 WHERE user_id = $2`, updatedAt, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// mutate loads the stored cart map, applies fn and writes it back, then
// returns the enriched cart.
func (r *PostgresRepository) mutate(userID int, updatedAt string, fn func(map[string]int)) ([]CartItem, error) {
	m, err := r.loadCartMap(userID)
	if err != nil {
		return nil, err
	}

	fn(m)

	updated, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.Exec(`UPDATE users SET cart = $1, updated_at = $2 WHERE user_id = $3`, string(updated), updatedAt, userID); err != nil {
		return nil, err
	}

	return r.enrich(m)
}

func (r *PostgresRepository) loadCartMap(userID int) (map[string]int, error) {
	var raw sql.NullString
	if err := r.db.QueryRow(`SELECT cart FROM users WHERE user_id = $1`, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m := make(map[string]int)
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *PostgresRepository) enrich(m map[string]int) ([]CartItem, error) {
	ids := make([]int, 0, len(m))
	for k := range m {
		if pid, err := strconv.Atoi(k); err == nil {
			ids = append(ids, pid)
		}
	}
	sort.Ints(ids)

	if len(ids) == 0 {
		return []CartItem{}, nil
	}

	rows, err := r.db.Query(getCartItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		var s product.Summary
		var img, species sql.NullString
		if err := rows.Scan(&s.ProductID, &s.Name, &s.UnitPrice, &img, &species); err != nil {
			return nil, err
		}
		if img.Valid {
			s.ImageRef = &img.String
		}
		if species.Valid {
			s.Species = &species.String
		}
		out = append(out, CartItem{Summary: s, Quantity: m[strconv.Itoa(s.ProductID)]})
	}

	return out, nil
}
