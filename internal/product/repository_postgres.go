package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `product_id, product_name, product_desc, species, grade, length_mm, width_mm, thickness_mm, product_price, stock, score, category, product_img, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY product_id
	`
	listByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY product_id
	`
	listByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
	getProductQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO products (product_name, product_desc, species, grade, length_mm, width_mm, thickness_mm, product_price, stock, score, category, product_img, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET product_name = $1,
			product_desc = $2,
			species = $3,
			grade = $4,
			length_mm = $5,
			width_mm = $6,
			thickness_mm = $7,
			product_price = $8,
			stock = $9,
			category = $10,
			product_img = $11,
			updated_at = $12
		WHERE product_id = $13
	`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresRepository) ListByCategory(category string) []Product {
	rows, err := r.db.Query(listByCategoryQuery, category)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows), nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var id int
	err := r.db.QueryRow(
		insertProductQuery,
		p.Name, p.Description, p.Species, p.Grade,
		p.LengthMM, p.WidthMM, p.ThicknessMM,
		p.Price, p.Stock, p.Score, p.Category, p.ImageRef,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name, p.Description, p.Species, p.Grade,
		p.LengthMM, p.WidthMM, p.ThicknessMM,
		p.Price, p.Stock, p.Category, p.ImageRef,
		p.UpdatedAt, id,
	)
	if err != nil {
		return Product{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
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

type productScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner productScanner) (Product, error) {
	var p Product
	var lengthMM, widthMM, thicknessMM sql.NullInt64
	var species, grade, category, img, createdAt, updatedAt sql.NullString

	if err := scanner.Scan(
		&p.ID, &p.Name, &p.Description,
		&species, &grade,
		&lengthMM, &widthMM, &thicknessMM,
		&p.Price, &p.Stock, &p.Score,
		&category, &img, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}

	if species.Valid {
		p.Species = &species.String
	}
	if grade.Valid {
		p.Grade = &grade.String
	}
	if lengthMM.Valid {
		v := int(lengthMM.Int64)
		p.LengthMM = &v
	}
	if widthMM.Valid {
		v := int(widthMM.Int64)
		p.WidthMM = &v
	}
	if thicknessMM.Valid {
		v := int(thicknessMM.Int64)
		p.ThicknessMM = &v
	}
	if category.Valid {
		p.Category = &category.String
	}
	if img.Valid {
		p.ImageRef = &img.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.String
	}

	return p, nil
}

func collectProducts(rows *sql.Rows) []Product {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
