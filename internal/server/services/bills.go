package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/server/auth"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/billed/internal/server/storage"
	"github.com/google/uuid"
)

// defaultPct is the VAT percentage of a freshly uploaded bill.
const defaultPct = 20

// ListedBill is a bill together with a temporary link to its attachment.
type ListedBill struct {
	*models.Bill
	FileURL *string
}

// UploadResult identifies the pending bill created for an upload. Key is the
// bill id.
type UploadResult struct {
	FileURL  string
	FileName string
	Key      string
}

// BillInput is the client-editable part of a bill.
type BillInput struct {
	Email        string
	Type         string
	Name         string
	Amount       int
	Date         string
	Vat          string
	Pct          int
	Commentary   string
	CommentAdmin string
	FileName     *string
	Status       string
}

type BillService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.FileStorage
	logger      logging.Logger
	newID       func() string
}

func NewBillService(db *sql.DB, m repomanager.RepositoryManager, fs storage.FileStorage, logger logging.Logger) *BillService {
	return &BillService{
		db:          db,
		repomanager: m,
		storage:     fs,
		logger:      logger.With("module", "bills"),
		newID:       uuid.NewString,
	}
}

// List returns every bill to administrators and only their own bills to
// everybody else.
func (s *BillService) List(ctx context.Context, who auth.Identity) ([]*ListedBill, error) {
	repo := s.repomanager.Bills(s.db)

	var (
		bills []*models.Bill
		err   error
	)
	if who.IsAdmin() {
		bills, err = repo.List(ctx)
	} else {
		bills, err = repo.ListByEmail(ctx, who.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing bills: %w", err)
	}

	result := make([]*ListedBill, 0, len(bills))
	for _, b := range bills {
		result = append(result, s.withURL(ctx, b))
	}
	return result, nil
}

// Upload stores an attachment and creates the pending bill it belongs to.
func (s *BillService) Upload(ctx context.Context, who auth.Identity, email, fileName, contentType string, content []byte) (*UploadResult, error) {
	if strings.TrimSpace(fileName) == "" || len(content) == 0 {
		return nil, common.ErrInvalidArgument
	}

	owner, err := ownerEmail(who, email)
	if err != nil {
		return nil, err
	}

	key := s.storage.NewKey(fileName)
	if err := s.storage.Put(ctx, key, contentType, content); err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error signing file url: %w", err)
	}

	bill := &models.Bill{
		ID:       s.newID(),
		Email:    owner,
		Pct:      defaultPct,
		FileKey:  &key,
		FileName: &fileName,
		Status:   common.StatusPending,
	}

	if _, err := s.repomanager.Bills(s.db).Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("error creating bill: %w", err)
	}

	s.logger.Info(ctx, "bill uploaded", "bill_id", bill.ID, "email", owner)

	return &UploadResult{FileURL: url, FileName: fileName, Key: bill.ID}, nil
}

// Update writes in to the bill named by selector, or inserts a new bill when
// selector is nil or empty.
func (s *BillService) Update(ctx context.Context, who auth.Identity, in BillInput, selector *string) (*ListedBill, error) {
	owner, err := ownerEmail(who, in.Email)
	if err != nil {
		return nil, err
	}

	status, err := allowedStatus(who, in.Status)
	if err != nil {
		return nil, err
	}

	if selector == nil || *selector == "" {
		bill := &models.Bill{ID: s.newID(), Email: owner, Status: status}
		apply(bill, in, who)

		if _, err := s.repomanager.Bills(s.db).Create(ctx, bill); err != nil {
			return nil, fmt.Errorf("error creating bill: %w", err)
		}
		return s.withURL(ctx, bill), nil
	}

	if _, err := uuid.Parse(*selector); err != nil {
		return nil, common.ErrInvalidArgument
	}

	var updated *models.Bill
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bills(tx)

		bill, err := repo.GetByID(ctx, *selector)
		if err != nil {
			return err
		}
		if !who.IsAdmin() && bill.Email != who.Email {
			return common.ErrForbidden
		}

		bill.Status = status
		apply(bill, in, who)

		updated, err = repo.Update(ctx, bill)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.withURL(ctx, updated), nil
}

func apply(b *models.Bill, in BillInput, who auth.Identity) {
	b.Type = in.Type
	b.Name = in.Name
	b.Amount = in.Amount
	b.Date = in.Date
	b.Vat = in.Vat
	b.Pct = in.Pct
	b.Commentary = in.Commentary
	if in.FileName != nil {
		b.FileName = in.FileName
	}
	if who.IsAdmin() {
		b.CommentAdmin = in.CommentAdmin
	}
}

// withURL attaches a download link. Signing failures leave the link empty.
func (s *BillService) withURL(ctx context.Context, b *models.Bill) *ListedBill {
	lb := &ListedBill{Bill: b}
	if b.FileKey == nil {
		return lb
	}

	url, err := s.storage.PresignGet(ctx, *b.FileKey)
	if err != nil {
		s.logger.Warn(ctx, "presign failed", "bill_id", b.ID, "error", err)
		return lb
	}
	lb.FileURL = &url
	return lb
}

func ownerEmail(who auth.Identity, email string) (string, error) {
	if email == "" || email == who.Email {
		return who.Email, nil
	}
	if who.IsAdmin() {
		return email, nil
	}
	return "", common.ErrForbidden
}

// allowedStatus keeps employees on pending; administrators decide.
func allowedStatus(who auth.Identity, status string) (string, error) {
	switch status {
	case "":
		return common.StatusPending, nil
	case common.StatusPending:
		return status, nil
	case common.StatusAccepted, common.StatusRefused:
		if who.IsAdmin() {
			return status, nil
		}
		return "", common.ErrForbidden
	default:
		return "", common.ErrInvalidArgument
	}
}
