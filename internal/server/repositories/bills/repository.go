// Package bills persists bills in PostgreSQL.
package bills

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	Update(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	GetByID(ctx context.Context, id string) (*models.Bill, error)
	List(ctx context.Context) ([]*models.Bill, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Bill, error)
}
