package images

import (
	"context"

	"picvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) error
	SelectByOwner(ctx context.Context, ownerID int64) ([]*models.Image, error)
}
