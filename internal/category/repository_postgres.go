package category

import (
	"database/sql"
)

// Repository provides access to navigation categories.
type Repository interface {
	List() ([]Category, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by ord then id. A failed query yields
// an empty slice so the storefront navigation degrades instead of erroring.
func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, category_name, category_img, COALESCE(ord, 0) FROM category ORDER BY COALESCE(ord, 0) DESC, category_id`)
	if err != nil {
		return []Category{}, nil
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		var img sql.NullString
		if err := rows.Scan(&c.CategoryID, &c.Name, &img, &c.Ord); err != nil {
			continue
		}
		if img.Valid {
			c.ImageRef = &img.String
		}
		out = append(out, c)
	}
	return out, nil
}
