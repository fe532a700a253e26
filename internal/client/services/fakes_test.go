package services

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/logging"
)

// ---- store ----

type fakeBills struct {
	mu sync.Mutex

	listRet []*models.Bill
	listErr error

	createRet   *client.CreateResult
	createErr   error
	createCalls []client.CreateRequest

	updateRet   *models.Bill
	updateErr   error
	updateCalls []client.UpdateRequest
	// updateGate, when set, holds Update until it is closed.
	updateGate chan struct{}
}

func (f *fakeBills) List(ctx context.Context) ([]*models.Bill, error) {
	return f.listRet, f.listErr
}

func (f *fakeBills) Create(ctx context.Context, req client.CreateRequest) (*client.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	return f.createRet, f.createErr
}

func (f *fakeBills) Update(ctx context.Context, req client.UpdateRequest) (*models.Bill, error) {
	if f.updateGate != nil {
		<-f.updateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, req)
	return f.updateRet, f.updateErr
}

func (f *fakeBills) updates() []client.UpdateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.UpdateRequest(nil), f.updateCalls...)
}

type fakeStore struct {
	bills *fakeBills
}

func (s *fakeStore) Bills() client.BillsResource { return s.bills }

// ---- session ----

type fakeSession struct {
	user  *models.User
	token string
	err   error

	saved   *models.User
	cleared bool
}

func (f *fakeSession) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.user, f.err
}
func (f *fakeSession) Token(ctx context.Context) (string, error) { return f.token, nil }
func (f *fakeSession) Save(ctx context.Context, u *models.User, token string) error {
	if f.err != nil {
		return f.err
	}
	f.saved, f.user, f.token = u, u, token
	return nil
}
func (f *fakeSession) Clear(ctx context.Context) error {
	f.cleared = true
	f.user, f.token = nil, ""
	return nil
}

// ---- navigation ----

type recordingNav struct {
	mu     sync.Mutex
	routes []models.Route
}

func (n *recordingNav) Navigate(r models.Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func (n *recordingNav) calls() []models.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Route(nil), n.routes...)
}

// ---- logging ----

func bufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return logging.NewJSONLogger(&buf, slog.LevelDebug), &buf
}

func employee() *fakeSession {
	return &fakeSession{user: &models.User{Email: "employee@test.tld", Type: "Employee"}, token: "jwt"}
}

func ptr(s string) *string { return &s }
