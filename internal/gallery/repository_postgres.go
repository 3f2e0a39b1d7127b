package gallery

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns gallery rows ordered by ord then id. A failed query comes
// back as an empty slice so the storefront can render its fallback strip.
func (r *PostgresRepository) List(limit int) ([]Item, error) {
	rows, err := r.db.Query(`SELECT gallery_id, image_ref, link, caption, COALESCE(ord, 0) FROM gallery ORDER BY COALESCE(ord, 0) DESC, gallery_id LIMIT $1`, limit)
	if err != nil {
		return []Item{}, nil
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var item Item
		var link, caption sql.NullString
		if err := rows.Scan(&item.GalleryID, &item.ImageRef, &link, &caption, &item.Ord); err != nil {
			continue
		}
		if link.Valid {
			item.Link = &link.String
		}
		if caption.Valid {
			item.Caption = &caption.String
		}
		out = append(out, item)
	}
	return out, nil
}

const createGalleryQuery = `
	INSERT INTO gallery (image_ref, link, caption, ord)
	VALUES ($1, $2, $3, $4)
	RETURNING gallery_id`

func (r *PostgresRepository) Create(item Item) (Item, error) {
	err := r.db.QueryRow(createGalleryQuery, item.ImageRef, item.Link, item.Caption, item.Ord).Scan(&item.GalleryID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM gallery WHERE gallery_id = $1`, id)
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
