package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/billed/internal/api"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fakes
 *************/

type fakeAPI struct {
	lastRegister *api.RegisterRequest
	lastLogin    *api.LoginRequest
	lastCreate   *api.CreateBillRequest
	lastUpdate   *api.UpdateBillRequest

	registerResp *api.RegisterResponse
	registerErr  error

	loginResp *api.LoginResponse
	loginErr  error

	listResp *api.ListBillsResponse
	listErr  error

	createResp *api.CreateBillResponse
	createErr  error

	updateResp *api.UpdateBillResponse
	updateErr  error
}

func (f *fakeAPI) Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.RegisterResponse, error) {
	f.lastRegister = in
	return f.registerResp, f.registerErr
}
func (f *fakeAPI) Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error) {
	f.lastLogin = in
	return f.loginResp, f.loginErr
}
func (f *fakeAPI) ListBills(ctx context.Context, in *api.ListBillsRequest, opts ...grpc.CallOption) (*api.ListBillsResponse, error) {
	return f.listResp, f.listErr
}
func (f *fakeAPI) CreateBill(ctx context.Context, in *api.CreateBillRequest, opts ...grpc.CallOption) (*api.CreateBillResponse, error) {
	f.lastCreate = in
	return f.createResp, f.createErr
}
func (f *fakeAPI) UpdateBill(ctx context.Context, in *api.UpdateBillRequest, opts ...grpc.CallOption) (*api.UpdateBillResponse, error) {
	f.lastUpdate = in
	return f.updateResp, f.updateErr
}

type fakeHealth struct {
	healthpb.HealthClient
	lastReq *healthpb.HealthCheckRequest
	resp    *healthpb.HealthCheckResponse
	err     error
}

func (f *fakeHealth) Check(ctx context.Context, in *healthpb.HealthCheckRequest, opts ...grpc.CallOption) (*healthpb.HealthCheckResponse, error) {
	f.lastReq = in
	return f.resp, f.err
}

/*************
 * accessTokenInterceptor
 *************/

func TestInterceptor_AttachesToken(t *testing.T) {
	c := &GRPCClient{}
	c.SetAccessToken("A1")

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Equal(t, []string{"A1"}, toks)
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_ReplacesExistingToken(t *testing.T) {
	c := &GRPCClient{}
	c.SetAccessToken("new")

	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "old", "x-trace", "1")
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))
		require.Equal(t, []string{"1"}, md.Get("x-trace"))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_NoTokenNoMetadata(t *testing.T) {
	c := &GRPCClient{}
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return status.Error(codes.Internal, "boom")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Equal(t, codes.Internal, status.Code(err))
}

/*************
 * mapError
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.ErrorIs(t, c.mapError(status.Error(codes.Unauthenticated, "x")), ErrUnauthorized)
	require.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "x")), ErrUnauthorized)
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.Unavailable, "x")))
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.DeadlineExceeded, "x")))
	require.Equal(t, ErrNotFound, c.mapError(status.Error(codes.NotFound, "x")))
	require.Equal(t, ErrAlreadyExists, c.mapError(status.Error(codes.AlreadyExists, "x")))
	require.ErrorIs(t, c.mapError(status.Error(codes.InvalidArgument, "bad date")), ErrInvalidInput)
	require.ErrorContains(t, c.mapError(errors.New("plain")), "rpc error:")
	require.NoError(t, c.mapError(nil))
}

/*************
 * Ping
 *************/

func TestPing_Serving(t *testing.T) {
	h := &fakeHealth{resp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}}
	c := &GRPCClient{health: h}
	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, api.ServiceName, h.lastReq.Service)
}

func TestPing_NotServing(t *testing.T) {
	h := &fakeHealth{resp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}}
	c := &GRPCClient{health: h}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_MapsRPCError(t *testing.T) {
	h := &fakeHealth{err: status.Error(codes.Unavailable, "down")}
	c := &GRPCClient{health: h}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

/*************
 * Register / Login
 *************/

func TestLogin_StoresToken(t *testing.T) {
	f := &fakeAPI{loginResp: &api.LoginResponse{AccessToken: "A", User: api.User{Email: "a@a", Type: "Employee"}}}
	c := &GRPCClient{client: f}

	u, tok, err := c.Login(context.Background(), "a@a", "pw")
	require.NoError(t, err)
	require.Equal(t, "A", tok)
	require.Equal(t, &models.User{Email: "a@a", Type: "Employee"}, u)
	require.Equal(t, "A", c.token())
	require.Equal(t, "pw", f.lastLogin.Password)
}

func TestLogin_MapsError(t *testing.T) {
	f := &fakeAPI{loginErr: status.Error(codes.Unauthenticated, "invalid email or password")}
	c := &GRPCClient{client: f}

	_, _, err := c.Login(context.Background(), "a@a", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Empty(t, c.token())
}

func TestRegister(t *testing.T) {
	f := &fakeAPI{registerResp: &api.RegisterResponse{User: api.User{Email: "a@a", Type: "Employee"}}}
	c := &GRPCClient{client: f}

	u, err := c.Register(context.Background(), "a@a", "pw")
	require.NoError(t, err)
	require.Equal(t, "Employee", u.Type)
	require.Equal(t, "a@a", f.lastRegister.Email)

	f.registerErr = status.Error(codes.AlreadyExists, "taken")
	_, err = c.Register(context.Background(), "a@a", "pw")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

/*************
 * Bills resource
 *************/

func TestBillsList(t *testing.T) {
	url, name := "https://s3/x", "x.png"
	f := &fakeAPI{listResp: &api.ListBillsResponse{Bills: []*api.Bill{
		{ID: "1", Email: "a@a", Type: "Transports", Name: "n", Amount: 10, Date: "2004-04-04", Vat: "2", Pct: 20, FileURL: &url, FileName: &name, Status: "pending"},
	}}}
	c := &GRPCClient{client: f}

	bills, err := c.Bills().List(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	require.Equal(t, "1", bills[0].ID)
	require.Equal(t, "2004-04-04", bills[0].Date)
	require.Equal(t, url, *bills[0].FileURL)
}

func TestBillsList_MapsError(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{listErr: status.Error(codes.Unavailable, "x")}}
	_, err := c.Bills().List(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestBillsCreate(t *testing.T) {
	f := &fakeAPI{createResp: &api.CreateBillResponse{FileURL: "https://localhost:3456/images/test.jpg", FileName: "test.jpg", Key: "1234"}}
	c := &GRPCClient{client: f}

	res, err := c.Bills().Create(context.Background(), CreateRequest{
		File:  models.BillFile{Name: "test.jpg", ContentType: "image/jpeg", Content: []byte{0xFF}},
		Email: "a@a",
	})
	require.NoError(t, err)
	require.Equal(t, &CreateResult{FileURL: "https://localhost:3456/images/test.jpg", FileName: "test.jpg", Key: "1234"}, res)
	require.Equal(t, "a@a", f.lastCreate.Email)
	require.Equal(t, "image/jpeg", f.lastCreate.ContentType)
}

func TestBillsUpdate(t *testing.T) {
	f := &fakeAPI{updateResp: &api.UpdateBillResponse{Bill: &api.Bill{ID: "47qAXb6fIm2zOKkLzMro", Status: "pending"}}}
	c := &GRPCClient{client: f}

	sel := "47qAXb6fIm2zOKkLzMro"
	b, err := c.Bills().Update(context.Background(), UpdateRequest{Data: `{"name":"x"}`, Selector: &sel})
	require.NoError(t, err)
	require.Equal(t, sel, b.ID)
	require.Equal(t, `{"name":"x"}`, f.lastUpdate.Data)
	require.Equal(t, sel, *f.lastUpdate.Selector)
}

func TestBillsUpdate_EmptyResponse(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{updateResp: &api.UpdateBillResponse{}}}
	_, err := c.Bills().Update(context.Background(), UpdateRequest{Data: "{}"})
	require.Error(t, err)
}
