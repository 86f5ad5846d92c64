package images

import (
	"context"
	"fmt"

	"picvault/internal/dbx"
	"picvault/internal/server/models"
)

// PostgresRepository implements the image metadata store over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an image metadata row. Rows are written only after the blob
// upload has succeeded, so a row always points at an existing object.
func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) error {
	query :=
		`INSERT INTO images (id, owner_id, storage_key, store)
		 VALUES ($1, $2, $3, $4)
		 RETURNING uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		image.ID, image.OwnerID, image.StorageKey, image.Locator.Store).Scan(&image.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// SelectByOwner returns all images owned by ownerID in insertion order.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Image, error) {
	query :=
		`SELECT id, owner_id, storage_key, store, uploaded_at FROM images
		 WHERE owner_id = $1
		 ORDER BY uploaded_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	var result []*models.Image
	for rows.Next() {
		var item models.Image
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.StorageKey, &item.Locator.Store, &item.UploadedAt); err != nil {
			return nil, err
		}
		item.Locator.Key = item.StorageKey
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
