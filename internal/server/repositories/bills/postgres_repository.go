package bills

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/server/models"
)

const selectColumns = `id, email, type, name, amount, date, vat, pct, commentary,
		comment_admin, file_key, file_name, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (*models.Bill, error) {
	b := &models.Bill{}
	err := row.Scan(&b.ID, &b.Email, &b.Type, &b.Name, &b.Amount, &b.Date, &b.Vat, &b.Pct,
		&b.Commentary, &b.CommentAdmin, &b.FileKey, &b.FileName, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	query :=
		`INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary,
		 comment_admin, file_key, file_name, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.Vat, bill.Pct,
		bill.Commentary, bill.CommentAdmin, bill.FileKey, bill.FileName, bill.Status,
	).Scan(&bill.CreatedAt, &bill.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bill, nil
}

// Update overwrites every mutable column of the bill with the given id.
// Unknown ids yield common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	query :=
		`UPDATE bills SET email = $2, type = $3, name = $4, amount = $5, date = $6, vat = $7,
		 pct = $8, commentary = $9, comment_admin = $10, file_key = $11, file_name = $12,
		 status = $13, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.Vat, bill.Pct,
		bill.Commentary, bill.CommentAdmin, bill.FileKey, bill.FileName, bill.Status,
	).Scan(&bill.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bill, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	query := `SELECT ` + selectColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Bill, error) {
	query := `SELECT ` + selectColumns + ` FROM bills ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]*models.Bill, error) {
	query := `SELECT ` + selectColumns + ` FROM bills WHERE email = $1 ORDER BY created_at`
	return r.list(ctx, query, email)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
