package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/billed/internal/api"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request", "email", req.Email)

	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "email", user.Email, "type", user.Type)
	return &api.RegisterResponse{User: api.User{Email: user.Email, Type: user.Type}}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	token, user, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.LoginResponse{AccessToken: token, User: api.User{Email: user.Email, Type: user.Type}}, nil
}

func (s *GRPCServer) ListBills(ctx context.Context, req *api.ListBillsRequest) (*api.ListBillsResponse, error) {
	who, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	bills, err := s.bills.List(ctx, who)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListBillsResponse{Bills: make([]*api.Bill, 0, len(bills))}
	for _, b := range bills {
		resp.Bills = append(resp.Bills, toWire(b))
	}
	return resp, nil
}

func (s *GRPCServer) CreateBill(ctx context.Context, req *api.CreateBillRequest) (*api.CreateBillResponse, error) {
	who, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	res, err := s.bills.Upload(ctx, who, req.Email, req.FileName, req.ContentType, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.CreateBillResponse{FileURL: res.FileURL, FileName: res.FileName, Key: res.Key}, nil
}

func (s *GRPCServer) UpdateBill(ctx context.Context, req *api.UpdateBillRequest) (*api.UpdateBillResponse, error) {
	who, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	var b api.Bill
	if err := json.Unmarshal([]byte(req.Data), &b); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed bill data")
	}

	in := services.BillInput{
		Email:        b.Email,
		Type:         b.Type,
		Name:         b.Name,
		Amount:       b.Amount,
		Date:         b.Date,
		Vat:          b.Vat,
		Pct:          b.Pct,
		Commentary:   b.Commentary,
		CommentAdmin: b.CommentAdmin,
		FileName:     b.FileName,
		Status:       b.Status,
	}

	updated, err := s.bills.Update(ctx, who, in, req.Selector)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.UpdateBillResponse{Bill: toWire(updated)}, nil
}

func toWire(b *services.ListedBill) *api.Bill {
	return &api.Bill{
		ID:           b.ID,
		Email:        b.Email,
		Type:         b.Type,
		Name:         b.Name,
		Amount:       b.Amount,
		Date:         b.Date,
		Vat:          b.Vat,
		Pct:          b.Pct,
		Commentary:   b.Commentary,
		CommentAdmin: b.CommentAdmin,
		FileURL:      b.FileURL,
		FileName:     b.FileName,
		Status:       b.Status,
	}
}

// toStatus maps service errors to gRPC codes. Unexpected errors are logged
// and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidCredential),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
