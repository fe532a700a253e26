package client

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/client/models"
)

// CreateRequest is the multipart-like payload of BillsResource.Create.
type CreateRequest struct {
	File  models.BillFile
	Email string
}

// CreateResult describes the stored attachment. Key identifies the bill the
// store created for it and is used as the selector of the following Update.
type CreateResult struct {
	FileURL  string
	FileName string
	Key      string
}

// UpdateRequest carries a JSON encoded bill. A nil Selector inserts a new
// bill.
type UpdateRequest struct {
	Data     string
	Selector *string
}

// BillsResource exposes the verbs of the bills collection.
type BillsResource interface {
	List(ctx context.Context) ([]*models.Bill, error)
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Bill, error)
}

// Store gives access to the remote collections.
type Store interface {
	Bills() BillsResource
}

// Client is the full remote API used by the CLI.
type Client interface {
	Store
	Close() error
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	SetAccessToken(token string)
	Ping(ctx context.Context) error
}
