package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/filex"
	"github.com/dmitrijs2005/billed/internal/logging"
)

const defaultPct = 20

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

type DraftState int

const (
	DraftEmpty DraftState = iota
	DraftFileAttached
	DraftFileValidated
	DraftFileRejected
	DraftSubmitted
	DraftPersisted
	DraftFailed
)

func (s DraftState) String() string {
	switch s {
	case DraftEmpty:
		return "empty"
	case DraftFileAttached:
		return "file attached"
	case DraftFileValidated:
		return "file validated"
	case DraftFileRejected:
		return "file rejected"
	case DraftSubmitted:
		return "submitted"
	case DraftPersisted:
		return "persisted"
	case DraftFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Draft is the in-memory state of the new bill form.
type Draft struct {
	State DraftState
	// FileInput is the name currently held by the file field.
	FileInput    string
	ErrorMessage string
	// BillID is the key returned when the attachment was stored.
	BillID   *string
	FileURL  *string
	FileName *string
}

// BillForm holds the raw values typed into the new bill form.
type BillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	Vat        string
	Pct        string
	Commentary string
}

// SessionReader resolves the logged-in user.
type SessionReader interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// SubmissionService drives the new bill form: attaching a receipt, assembling
// the bill on submit and persisting it.
type SubmissionService struct {
	store   client.Store
	session SessionReader
	nav     models.Navigator
	logger  logging.Logger

	mu    sync.Mutex
	draft Draft

	wg sync.WaitGroup
}

func NewSubmissionService(store client.Store, session SessionReader, nav models.Navigator, logger logging.Logger) *SubmissionService {
	return &SubmissionService{
		store:   store,
		session: session,
		nav:     nav,
		logger:  logger.With("module", "newbill"),
	}
}

// Draft returns a snapshot of the current draft.
func (s *SubmissionService) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Wait blocks until every persist step started by HandleSubmit has finished.
func (s *SubmissionService) Wait() {
	s.wg.Wait()
}

func (s *SubmissionService) email(ctx context.Context) (string, error) {
	u, err := s.session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrNoSession
	}
	return u.Email, nil
}

// HandleChangeFile attaches file to the draft. Files that are not jpg, jpeg
// or png images are refused with a *ValidationError and never reach the
// store. Accepted files are stored right away; a failed store call is logged
// and returned as a *StoreError, leaving the draft without file metadata.
func (s *SubmissionService) HandleChangeFile(ctx context.Context, file models.BillFile) error {
	s.mu.Lock()
	s.draft.State = DraftFileAttached
	s.draft.FileInput = file.Name

	if _, ok := allowedExtensions[filex.Ext(file.Name)]; !ok {
		s.draft.State = DraftFileRejected
		s.draft.FileInput = ""
		s.draft.ErrorMessage = InvalidFileFormatMessage
		s.mu.Unlock()
		return &ValidationError{Field: "file", Value: file.Name, Message: InvalidFileFormatMessage}
	}

	s.draft.State = DraftFileValidated
	s.draft.ErrorMessage = ""
	s.mu.Unlock()

	email, err := s.email(ctx)
	if err != nil {
		return err
	}

	res, err := s.store.Bills().Create(ctx, client.CreateRequest{File: file, Email: email})
	if err != nil {
		serr := &StoreError{Op: "create", Err: err}
		s.logger.Error(ctx, "attachment upload failed", "file", file.Name, "error", serr)
		return serr
	}

	fileName := res.FileName
	if fileName == "" {
		fileName = file.Name
	}

	s.mu.Lock()
	s.draft.BillID = &res.Key
	s.draft.FileURL = &res.FileURL
	s.draft.FileName = &fileName
	s.mu.Unlock()

	s.logger.Debug(ctx, "attachment stored", "key", res.Key, "file", fileName)
	return nil
}

// HandleSubmit assembles a pending bill from form and the draft, starts
// persisting it in the background and returns to the listing without
// waiting for the store.
func (s *SubmissionService) HandleSubmit(ctx context.Context, form BillForm) (*models.Bill, error) {
	email, err := s.email(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	bill := &models.Bill{
		Email:      email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     parseLeadingInt(form.Amount),
		Date:       form.Date,
		Vat:        form.Vat,
		Pct:        parsePct(form.Pct),
		Commentary: form.Commentary,
		FileURL:    s.draft.FileURL,
		FileName:   s.draft.FileName,
		Status:     common.StatusPending,
	}
	s.draft.State = DraftSubmitted
	s.mu.Unlock()

	s.logger.Debug(ctx, "bill submitted", "bill", bill)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.UpdateBill(context.WithoutCancel(ctx), bill)
	}()

	s.nav.Navigate(models.RouteBills)

	return bill, nil
}

// updatePayload is the wire form of a bill sent to Update. The attachment
// URL and the id are not part of it.
type updatePayload struct {
	Email      string  `json:"email"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Amount     int     `json:"amount"`
	Date       string  `json:"date"`
	Vat        string  `json:"vat"`
	Pct        int     `json:"pct"`
	Commentary string  `json:"commentary"`
	FileName   *string `json:"fileName"`
	Status     string  `json:"status"`
}

// UpdateBill sends bill to the store. The selector is bill.ID when set,
// otherwise the bill created with the attachment, if any. On success it navigates to the listing; on
// failure it logs, marks the draft failed and stays put.
func (s *SubmissionService) UpdateBill(ctx context.Context, bill *models.Bill) error {
	data, err := json.Marshal(updatePayload{
		Email:      bill.Email,
		Type:       bill.Type,
		Name:       bill.Name,
		Amount:     bill.Amount,
		Date:       bill.Date,
		Vat:        bill.Vat,
		Pct:        bill.Pct,
		Commentary: bill.Commentary,
		FileName:   bill.FileName,
		Status:     bill.Status,
	})
	if err != nil {
		return err
	}

	var selector *string
	if bill.ID != "" {
		id := bill.ID
		selector = &id
	} else {
		s.mu.Lock()
		selector = s.draft.BillID
		s.mu.Unlock()
	}

	if _, err := s.store.Bills().Update(ctx, client.UpdateRequest{Data: string(data), Selector: selector}); err != nil {
		serr := &StoreError{Op: "update", Err: err}
		s.logger.Error(ctx, "bill update failed", "error", serr)
		s.setState(DraftFailed)
		return serr
	}

	s.setState(DraftPersisted)
	s.nav.Navigate(models.RouteBills)
	return nil
}

func (s *SubmissionService) setState(st DraftState) {
	s.mu.Lock()
	s.draft.State = st
	s.mu.Unlock()
}

// parseLeadingIntOK reads the leading base-10 integer of s, ignoring leading
// spaces ("12.5" gives 12). ok is false when there are no digits.
func parseLeadingIntOK(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseLeadingInt(s string) int {
	n, _ := parseLeadingIntOK(s)
	return n
}

func parsePct(s string) int {
	n, ok := parseLeadingIntOK(s)
	if !ok {
		return defaultPct
	}
	return n
}
