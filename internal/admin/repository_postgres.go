package admin

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Repository runs the reporting and bulk maintenance queries behind the
// admin dashboard.
type Repository interface {
	Summary() (Summary, error)
	RevenueByDay(days int) ([]RevenuePoint, error)
	TopProducts(limit int) ([]TopProduct, error)
	AdjustPricesByCategory(category string, percent decimal.Decimal) (int, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const summaryQuery = `
	SELECT
		(SELECT COUNT(*) FROM orders WHERE status <> 'cancelled'),
		(SELECT COUNT(*) FROM users WHERE role = 'customer'),
		(SELECT COUNT(*) FROM products),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelled')`

func (r *PostgresRepository) Summary() (Summary, error) {
	var s Summary
	var revenue string
	err := r.db.QueryRow(summaryQuery).Scan(&s.Orders, &s.Customers, &s.Products, &revenue)
	if err != nil {
		return Summary{}, err
	}
	s.Revenue, err = decimal.NewFromString(revenue)
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

// created_at is stored as RFC3339 text, so the first ten characters are the
// calendar day.
const revenueByDayQuery = `
	SELECT substr(created_at, 1, 10) AS day, COUNT(*), COALESCE(SUM(total), 0)
	FROM orders
	WHERE status <> 'cancelled'
	GROUP BY day
	ORDER BY day DESC
	LIMIT $1`

func (r *PostgresRepository) RevenueByDay(days int) ([]RevenuePoint, error) {
	rows, err := r.db.Query(revenueByDayQuery, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []RevenuePoint{}
	for rows.Next() {
		var p RevenuePoint
		var revenue string
		if err := rows.Scan(&p.Day, &p.Orders, &revenue); err != nil {
			return nil, err
		}
		p.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Order items live in a jsonb array, so best sellers are computed by
// unnesting the array per order.
const topProductsQuery = `
	SELECT i.product_id, p.product_name,
		SUM(i.quantity) AS units,
		SUM(i.quantity * i.unit_price) AS revenue
	FROM orders o,
		LATERAL (
			SELECT (e->>'productId')::int AS product_id,
				(e->>'quantity')::int AS quantity,
				(e->>'unitPrice')::numeric AS unit_price
			FROM jsonb_array_elements(o.items) e
		) i
	JOIN products p ON p.product_id = i.product_id
	WHERE o.status <> 'cancelled'
	GROUP BY i.product_id, p.product_name
	ORDER BY units DESC, revenue DESC
	LIMIT $1`

func (r *PostgresRepository) TopProducts(limit int) ([]TopProduct, error) {
	rows, err := r.db.Query(topProductsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []TopProduct{}
	for rows.Next() {
		var tp TopProduct
		var revenue string
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &revenue); err != nil {
			return nil, err
		}
		tp.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, err
		}
		top = append(top, tp)
	}
	return top, rows.Err()
}

const adjustPricesQuery = `
	UPDATE products
	SET product_price = round(product_price * (1 + $2 / 100.0), 2),
		updated_at = $3
	WHERE category = $1`

func (r *PostgresRepository) AdjustPricesByCategory(category string, percent decimal.Decimal) (int, error) {
	res, err := r.db.Exec(adjustPricesQuery, category, percent.String(), nowStamp())
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
