package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The Marketplace service is declared over protobuf well-known types, so it needs no
// generated code.
const (
	ServiceName = "marketplace.v1.Marketplace"

	listProductsMethod       = "/" + ServiceName + "/ListProducts"
	deleteProductMethod      = "/" + ServiceName + "/DeleteProduct"
	incrementViewCountMethod = "/" + ServiceName + "/IncrementViewCount"
)

type MarketplaceServer interface {
	ListProducts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	DeleteProduct(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	IncrementViewCount(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
}

func RegisterMarketplaceServer(s grpclib.ServiceRegistrar, srv MarketplaceServer) {
	s.RegisterService(&marketplaceServiceDesc, srv)
}

var marketplaceServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketplaceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "DeleteProduct", Handler: deleteProductHandler},
		{MethodName: "IncrementViewCount", Handler: incrementViewCountHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "marketplace/v1/marketplace.proto",
}

func listProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServer).ListProducts(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: listProductsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteProductHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServer).DeleteProduct(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: deleteProductMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServer).DeleteProduct(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func incrementViewCountHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServer).IncrementViewCount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: incrementViewCountMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServer).IncrementViewCount(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

type MarketplaceClient struct {
	cc grpclib.ClientConnInterface
}

func NewMarketplaceClient(cc grpclib.ClientConnInterface) *MarketplaceClient {
	return &MarketplaceClient{cc: cc}
}

func (c *MarketplaceClient) ListProducts(ctx context.Context, in *emptypb.Empty, opts ...grpclib.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listProductsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MarketplaceClient) DeleteProduct(ctx context.Context, in *wrapperspb.StringValue, opts ...grpclib.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, deleteProductMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MarketplaceClient) IncrementViewCount(ctx context.Context, in *emptypb.Empty, opts ...grpclib.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, incrementViewCountMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
