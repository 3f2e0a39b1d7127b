package review

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listReviewsQuery = `
	SELECT review_id, product_id, user_id, reviewer_name, score, comment, created_at
	FROM reviews
	WHERE product_id = $1
	ORDER BY review_id DESC`

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		var comment, createdAt sql.NullString
		if err := rows.Scan(&rv.ReviewID, &rv.ProductID, &rv.UserID, &rv.ReviewerName, &rv.Score, &comment, &createdAt); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		rv.CreatedAt = createdAt.String
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

const createReviewQuery = `
	INSERT INTO reviews (product_id, user_id, reviewer_name, score, comment, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING review_id`

const refreshScoreQuery = `
	UPDATE products
	SET score = round((SELECT COALESCE(AVG(score), 0) FROM reviews WHERE product_id = $1))
	WHERE product_id = $1`

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	err := r.db.QueryRow(createReviewQuery,
		rv.ProductID, rv.UserID, rv.ReviewerName, rv.Score, rv.Comment, rv.CreatedAt,
	).Scan(&rv.ReviewID)
	if err != nil {
		return Review{}, err
	}

	if _, err := r.db.Exec(refreshScoreQuery, rv.ProductID); err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) AverageScore(productID int) (float64, error) {
	var avg float64
	err := r.db.QueryRow(`SELECT COALESCE(AVG(score), 0) FROM reviews WHERE product_id = $1`, productID).Scan(&avg)
	return avg, err
}
