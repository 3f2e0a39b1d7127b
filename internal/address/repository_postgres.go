package address

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	listAddressesQuery = `
		SELECT address_id, user_id, label, line, city, postal_code, phone, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY address_id`

	insertAddressQuery = `
		INSERT INTO addresses (user_id, label, line, city, postal_code, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING address_id`

	updateAddressQuery = `
		UPDATE addresses
		SET label = $3, line = $4, city = $5, postal_code = $6, phone = $7, updated_at = $8
		WHERE user_id = $1 AND address_id = $2
		RETURNING created_at`

	deleteAddressQuery = `
		DELETE FROM addresses WHERE user_id = $1 AND address_id = $2`
)

func (r *PostgresRepository) List(userID int) ([]Address, error) {
	rows, err := r.db.Query(listAddressesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Address{}
	for rows.Next() {
		var a Address
		var label, phone, createdAt, updatedAt sql.NullString
		if err := rows.Scan(&a.AddressID, &a.UserID, &label, &a.Line, &a.City, &a.PostalCode, &phone, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		a.Label = label.String
		a.Phone = phone.String
		a.CreatedAt = createdAt.String
		a.UpdatedAt = updatedAt.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery,
		a.UserID, a.Label, a.Line, a.City, a.PostalCode, a.Phone, a.CreatedAt,
	).Scan(&a.AddressID)
	if err != nil {
		return Address{}, err
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	var createdAt sql.NullString
	err := r.db.QueryRow(updateAddressQuery,
		a.UserID, a.AddressID, a.Label, a.Line, a.City, a.PostalCode, a.Phone, a.UpdatedAt,
	).Scan(&createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	a.CreatedAt = createdAt.String
	return a, nil
}

func (r *PostgresRepository) Delete(userID int, addressID int) error {
	res, err := r.db.Exec(deleteAddressQuery, userID, addressID)
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
