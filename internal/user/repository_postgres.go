package user

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `user_id, email, password, first_name, last_name, phone, role, main_address_id, cart, array_to_string(wishlist_product_ids, ',') AS wishlist_text, array_to_string(order_ids, ',') AS orders_text, created_at, updated_at`

	listUsersQuery = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY user_id
	`
	getUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	insertUserQuery = `
		INSERT INTO users (email, password, first_name, last_name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			first_name = $2,
			last_name = $3,
			phone = $4,
			main_address_id = $5,
			updated_at = $6
		WHERE user_id = $7
	`
	deleteUserQuery = `DELETE FROM users WHERE user_id = $1`

	appendOrderIDQuery = `
		UPDATE users
		SET order_ids = array_append(coalesce(order_ids, ARRAY[]::integer[]), $2)
		WHERE user_id = $1
		RETURNING array_to_string(order_ids, ',')
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(getUserByEmailQuery, email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	if user.Role == "" {
		user.Role = RoleCustomer
	}

	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	user.ID = id
	return user, nil
}

func (r *PostgresRepository) Update(id int, userUpdate User) (User, error) {
	var mainAddr any
	if userUpdate.MainAddressID != nil {
		mainAddr = *userUpdate.MainAddressID
	}
	result, err := r.db.Exec(
		updateUserQuery,
		userUpdate.Email,
		userUpdate.FirstName,
		userUpdate.LastName,
		userUpdate.Phone,
		mainAddr,
		userUpdate.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
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

func (r *PostgresRepository) AppendOrderID(userID int, orderID int) (User, error) {
	var ordersText sql.NullString
	if err := r.db.QueryRow(appendOrderIDQuery, userID, orderID).Scan(&ordersText); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return r.GetByID(userID)
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var role sql.NullString
	var mainAddr sql.NullInt64
	var cartJSON sql.NullString
	var wishlistText sql.NullString
	var ordersText sql.NullString
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&role,
		&mainAddr,
		&cartJSON,
		&wishlistText,
		&ordersText,
		&createdAt,
		&updatedAt,
	); err != nil {
		return User{}, err
	}

	if role.Valid {
		user.Role = role.String
	}
	if mainAddr.Valid {
		v := int(mainAddr.Int64)
		user.MainAddressID = &v
	}

	if cartJSON.Valid && cartJSON.String != "" {
		var rawMap map[string]int
		if err := json.Unmarshal([]byte(cartJSON.String), &rawMap); err == nil {
			user.Cart = make(map[int]int, len(rawMap))
			for k, qty := range rawMap {
				pid, err := strconv.Atoi(k)
				if err != nil {
					return User{}, err
				}
				user.Cart[pid] = qty
			}
		}
	}

	var err error
	if user.WishlistProductIDs, err = parseIntList(wishlistText); err != nil {
		return User{}, err
	}
	if user.OrderIDs, err = parseIntList(ordersText); err != nil {
		return User{}, err
	}

	if createdAt.Valid {
		user.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.String
	}

	return user, nil
}

func parseIntList(text sql.NullString) ([]int, error) {
	if !text.Valid || text.String == "" {
		return nil, nil
	}

	parts := strings.Split(text.String, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
