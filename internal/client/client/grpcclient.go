package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/billed/internal/api"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.BillStoreClient
	health      healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewBillStoreClient(conn)
	c.health = healthpb.NewHealthClient(conn)

	return c, nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken replaces the token attached to outgoing calls. An empty
// token sends calls unauthenticated.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.User{Email: resp.User.Email, Type: resp.User.Type}, nil
}

// Login authenticates and keeps the returned token for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, "", s.mapError(err)
	}

	s.SetAccessToken(resp.AccessToken)

	return &models.User{Email: resp.User.Email, Type: resp.User.Type}, resp.AccessToken, nil
}

// Ping asks the server's health service about the bill store.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Bills() BillsResource {
	return &grpcBills{c: s}
}

type grpcBills struct {
	c *GRPCClient
}

func (b *grpcBills) List(ctx context.Context) ([]*models.Bill, error) {
	resp, err := b.c.client.ListBills(ctx, &api.ListBillsRequest{})
	if err != nil {
		return nil, b.c.mapError(err)
	}

	bills := make([]*models.Bill, 0, len(resp.Bills))
	for _, w := range resp.Bills {
		bills = append(bills, fromWire(w))
	}
	return bills, nil
}

func (b *grpcBills) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	resp, err := b.c.client.CreateBill(ctx, &api.CreateBillRequest{
		Email:       req.Email,
		FileName:    req.File.Name,
		ContentType: req.File.ContentType,
		Content:     req.File.Content,
	})
	if err != nil {
		return nil, b.c.mapError(err)
	}
	return &CreateResult{FileURL: resp.FileURL, FileName: resp.FileName, Key: resp.Key}, nil
}

func (b *grpcBills) Update(ctx context.Context, req UpdateRequest) (*models.Bill, error) {
	resp, err := b.c.client.UpdateBill(ctx, &api.UpdateBillRequest{Data: req.Data, Selector: req.Selector})
	if err != nil {
		return nil, b.c.mapError(err)
	}
	if resp.Bill == nil {
		return nil, errEmptyBill
	}
	return fromWire(resp.Bill), nil
}

func fromWire(w *api.Bill) *models.Bill {
	return &models.Bill{
		ID:           w.ID,
		Email:        w.Email,
		Type:         w.Type,
		Name:         w.Name,
		Amount:       w.Amount,
		Date:         w.Date,
		Vat:          w.Vat,
		Pct:          w.Pct,
		Commentary:   w.Commentary,
		CommentAdmin: w.CommentAdmin,
		FileURL:      w.FileURL,
		FileName:     w.FileName,
		Status:       w.Status,
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
