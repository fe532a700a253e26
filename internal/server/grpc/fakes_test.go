package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/auth"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/services"
)

const testSecret = "secret"

type fakeUsers struct {
	registerErr error
	loginErr    error
	user        *models.User
}

func (f *fakeUsers) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", Email: email, Type: common.UserTypeEmployee}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	u := f.user
	if u == nil {
		u = &models.User{ID: "u-1", Email: email, Type: common.UserTypeEmployee}
	}
	tok, err := auth.GenerateToken(auth.Identity{UserID: u.ID, Email: u.Email, Type: u.Type}, []byte(testSecret), time.Hour)
	return tok, u, err
}

type fakeBills struct {
	mu sync.Mutex

	listed   []*services.ListedBill
	listErr  error
	listWho  auth.Identity
	upload   *services.UploadResult
	uploadIn []string
	update   *services.ListedBill
	updateIn services.BillInput
	selector *string
	err      error
}

func (f *fakeBills) List(ctx context.Context, who auth.Identity) ([]*services.ListedBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listWho = who
	return f.listed, f.listErr
}

func (f *fakeBills) Upload(ctx context.Context, who auth.Identity, email, fileName, contentType string, content []byte) (*services.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadIn = []string{who.Email, email, fileName, contentType, string(content)}
	if f.err != nil {
		return nil, f.err
	}
	return f.upload, nil
}

func (f *fakeBills) Update(ctx context.Context, who auth.Identity, in services.BillInput, selector *string) (*services.ListedBill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateIn = in
	f.selector = selector
	if f.err != nil {
		return nil, f.err
	}
	return f.update, nil
}

func ptr(s string) *string { return &s }
