package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `order_id, user_id, items, subtotal, discount, total, customer_name, customer_email, phone_number, delivery_method, shipping_address, special_instructions, status, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (user_id, items, subtotal, discount, total, customer_name, customer_email, phone_number, delivery_method, shipping_address, special_instructions, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING order_id
	`
	getOrderQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	listByUserQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id DESC
	`
	listAllQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY order_id DESC
	`
	updateStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE order_id = $3
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	var id int
	err = r.db.QueryRow(
		insertOrderQuery,
		ord.UserID, itemsJSON,
		ord.Subtotal, ord.Discount, ord.Total,
		ord.CustomerName, ord.CustomerEmail, ord.PhoneNumber,
		ord.DeliveryMethod, ord.ShippingAddress, ord.SpecialInstructions,
		ord.Status, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Order{}, err
	}

	ord.OrderID = id
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	rows, err := r.db.Query(listAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) UpdateStatus(id int, status string, updatedAt string) (Order, error) {
	result, err := r.db.Exec(updateStatusQuery, status, updatedAt, id)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

type orderScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner orderScanner) (Order, error) {
	var ord Order
	var itemsJSON []byte
	var instructions sql.NullString

	if err := scanner.Scan(
		&ord.OrderID, &ord.UserID, &itemsJSON,
		&ord.Subtotal, &ord.Discount, &ord.Total,
		&ord.CustomerName, &ord.CustomerEmail, &ord.PhoneNumber,
		&ord.DeliveryMethod, &ord.ShippingAddress, &instructions,
		&ord.Status, &ord.CreatedAt, &ord.UpdatedAt,
	); err != nil {
		return Order{}, err
	}

	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	if instructions.Valid {
		ord.SpecialInstructions = instructions.String
	}

	return ord, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}
