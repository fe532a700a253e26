package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/repositories/bills"
	"github.com/dmitrijs2005/billed/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	err     error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

type fakeBillsRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Bill
	order     []string
	createErr error
	updateErr error
}

func newFakeBillsRepo(seed ...*models.Bill) *fakeBillsRepo {
	r := &fakeBillsRepo{rows: map[string]*models.Bill{}}
	for _, b := range seed {
		r.rows[b.ID] = b
		r.order = append(r.order, b.ID)
	}
	return r
}

func (f *fakeBillsRepo) Create(ctx context.Context, b *models.Bill) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *b
	f.rows[b.ID] = &cp
	f.order = append(f.order, b.ID)
	return b, nil
}

func (f *fakeBillsRepo) Update(ctx context.Context, b *models.Bill) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.rows[b.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *b
	f.rows[b.ID] = &cp
	return b, nil
}

func (f *fakeBillsRepo) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBillsRepo) List(ctx context.Context) ([]*models.Bill, error) {
	return f.filter(func(*models.Bill) bool { return true }), nil
}

func (f *fakeBillsRepo) ListByEmail(ctx context.Context, email string) ([]*models.Bill, error) {
	return f.filter(func(b *models.Bill) bool { return b.Email == email }), nil
}

func (f *fakeBillsRepo) filter(keep func(*models.Bill) bool) []*models.Bill {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Bill{}
	for _, id := range f.order {
		if b := f.rows[id]; keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	bills *fakeBillsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.users }
func (m *fakeRepoManager) Bills(db dbx.DBTX) bills.Repository          { return m.bills }

type fakeStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	putErr     error
	presignErr error
	keys       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) NewKey(fileName string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys++
	return fmt.Sprintf("bills/%d/%s", f.keys, fileName)
}

func (f *fakeStorage) Put(ctx context.Context, key, contentType string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = content
	return nil
}

func (f *fakeStorage) PresignGet(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://files.test/" + key, nil
}

var errBoom = errors.New("boom")

func ptr(s string) *string { return &s }
