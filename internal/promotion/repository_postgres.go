package promotion

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listPromotionsQuery = `
	SELECT promo_id, promo_name, kind, value, starts_at, ends_at, active, created_at
	FROM promotions
	ORDER BY promo_id`

func (r *PostgresRepository) List() ([]Promotion, error) {
	rows, err := r.db.Query(listPromotionsQuery)
	if err != nil {
		return []Promotion{}, nil
	}
	defer rows.Close()

	var promos []Promotion
	for rows.Next() {
		var p Promotion
		var value string
		var startsAt, endsAt, createdAt sql.NullString
		if err := rows.Scan(&p.PromoID, &p.Name, &p.Kind, &value, &startsAt, &endsAt, &p.Active, &createdAt); err != nil {
			return nil, err
		}
		p.Value, err = decimal.NewFromString(value)
		if err != nil {
			return nil, err
		}
		p.StartsAt = startsAt.String
		p.EndsAt = endsAt.String
		p.CreatedAt = createdAt.String
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

const createPromotionQuery = `
	INSERT INTO promotions (promo_name, kind, value, starts_at, ends_at, active, created_at)
	VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	RETURNING promo_id`

func (r *PostgresRepository) Create(p Promotion) (Promotion, error) {
	err := r.db.QueryRow(createPromotionQuery,
		p.Name, p.Kind, p.Value.String(), p.StartsAt, p.EndsAt, p.Active, p.CreatedAt,
	).Scan(&p.PromoID)
	if err != nil {
		return Promotion{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM promotions WHERE promo_id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
