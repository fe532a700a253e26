package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "billed.v1.BillStore"

const (
	BillStore_Register_FullMethodName   = "/" + ServiceName + "/Register"
	BillStore_Login_FullMethodName      = "/" + ServiceName + "/Login"
	BillStore_ListBills_FullMethodName  = "/" + ServiceName + "/ListBills"
	BillStore_CreateBill_FullMethodName = "/" + ServiceName + "/CreateBill"
	BillStore_UpdateBill_FullMethodName = "/" + ServiceName + "/UpdateBill"
)

// BillStoreServer is implemented by the bill store.
type BillStoreServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ListBills(context.Context, *ListBillsRequest) (*ListBillsResponse, error)
	CreateBill(context.Context, *CreateBillRequest) (*CreateBillResponse, error)
	UpdateBill(context.Context, *UpdateBillRequest) (*UpdateBillResponse, error)
}

// UnimplementedBillStoreServer answers every method with codes.Unimplemented.
type UnimplementedBillStoreServer struct{}

func (UnimplementedBillStoreServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedBillStoreServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedBillStoreServer) ListBills(context.Context, *ListBillsRequest) (*ListBillsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBills not implemented")
}
func (UnimplementedBillStoreServer) CreateBill(context.Context, *CreateBillRequest) (*CreateBillResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBill not implemented")
}
func (UnimplementedBillStoreServer) UpdateBill(context.Context, *UpdateBillRequest) (*UpdateBillResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateBill not implemented")
}

func RegisterBillStoreServer(s grpc.ServiceRegistrar, srv BillStoreServer) {
	s.RegisterService(&BillStore_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(BillStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BillStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BillStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var BillStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BillStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(BillStore_Register_FullMethodName, BillStoreServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(BillStore_Login_FullMethodName, BillStoreServer.Login)},
		{MethodName: "ListBills", Handler: unaryHandler(BillStore_ListBills_FullMethodName, BillStoreServer.ListBills)},
		{MethodName: "CreateBill", Handler: unaryHandler(BillStore_CreateBill_FullMethodName, BillStoreServer.CreateBill)},
		{MethodName: "UpdateBill", Handler: unaryHandler(BillStore_UpdateBill_FullMethodName, BillStoreServer.UpdateBill)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "billed/v1/bills",
}

// BillStoreClient is the client side of the BillStore service.
type BillStoreClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	ListBills(ctx context.Context, in *ListBillsRequest, opts ...grpc.CallOption) (*ListBillsResponse, error)
	CreateBill(ctx context.Context, in *CreateBillRequest, opts ...grpc.CallOption) (*CreateBillResponse, error)
	UpdateBill(ctx context.Context, in *UpdateBillRequest, opts ...grpc.CallOption) (*UpdateBillResponse, error)
}

type billStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewBillStoreClient(cc grpc.ClientConnInterface) BillStoreClient {
	return &billStoreClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *billStoreClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, BillStore_Register_FullMethodName, in, opts)
}

func (c *billStoreClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, BillStore_Login_FullMethodName, in, opts)
}

func (c *billStoreClient) ListBills(ctx context.Context, in *ListBillsRequest, opts ...grpc.CallOption) (*ListBillsResponse, error) {
	return invoke[ListBillsResponse](ctx, c.cc, BillStore_ListBills_FullMethodName, in, opts)
}

func (c *billStoreClient) CreateBill(ctx context.Context, in *CreateBillRequest, opts ...grpc.CallOption) (*CreateBillResponse, error) {
	return invoke[CreateBillResponse](ctx, c.cc, BillStore_CreateBill_FullMethodName, in, opts)
}

func (c *billStoreClient) UpdateBill(ctx context.Context, in *UpdateBillRequest, opts ...grpc.CallOption) (*UpdateBillResponse, error) {
	return invoke[UpdateBillResponse](ctx, c.cc, BillStore_UpdateBill_FullMethodName, in, opts)
}
