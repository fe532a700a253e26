package services

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/format"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/logging"
)

// BillsService loads bills for the listing screen.
type BillsService struct {
	store  client.Store
	logger logging.Logger
}

func NewBillsService(store client.Store, logger logging.Logger) *BillsService {
	return &BillsService{store: store, logger: logger.With("module", "bills")}
}

// GetBills lists the bills visible to the current user, newest first, with
// dates and statuses in display form. A bill whose date cannot be parsed is
// kept with its stored date and reported as a MalformedDataError in the log.
// Owner scoping is left to the store.
func (s *BillsService) GetBills(ctx context.Context) ([]*models.Bill, error) {
	stored, err := s.store.Bills().List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	// stored dates are YYYY-MM-DD, so string order is date order
	stored = slices.Clone(stored)
	slices.SortStableFunc(stored, func(a, b *models.Bill) int {
		return strings.Compare(b.Date, a.Date)
	})

	bills := make([]*models.Bill, 0, len(stored))
	for _, doc := range stored {
		b := *doc
		b.Status = format.Status(doc.Status)

		display, err := format.Date(doc.Date)
		if err != nil {
			s.logger.Warn(ctx, "keeping stored date",
				"error", &MalformedDataError{BillID: doc.ID, Field: "date", Value: doc.Date, Err: err})
		} else {
			b.Date = display
		}

		bills = append(bills, &b)
	}

	return bills, nil
}

// GetBill returns one bill of the listing by id.
func (s *BillsService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bills, err := s.GetBills(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, client.ErrNotFound
}
