// Package proto holds gRPC contract of customers.CustomerService built on protobuf well-known types
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CustomerServiceName is fully qualified gRPC service name
const CustomerServiceName = "customers.CustomerService"

// CustomerServiceServer is the server API for CustomerService service
type CustomerServiceServer interface {
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FindMany(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	FindOne(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedCustomerServiceServer must be embedded to have forward compatible implementations
type UnimplementedCustomerServiceServer struct{}

func (UnimplementedCustomerServiceServer) Create(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedCustomerServiceServer) FindMany(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindMany not implemented")
}

func (UnimplementedCustomerServiceServer) FindOne(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindOne not implemented")
}

func (UnimplementedCustomerServiceServer) Update(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedCustomerServiceServer) Delete(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}

// CustomerServiceDesc is the grpc.ServiceDesc for CustomerService service
var CustomerServiceDesc = grpc.ServiceDesc{
	ServiceName: CustomerServiceName,
	HandlerType: (*CustomerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Create", CustomerServiceServer.Create),
		unaryMethod("FindMany", CustomerServiceServer.FindMany),
		unaryMethod("FindOne", CustomerServiceServer.FindOne),
		unaryMethod("Update", CustomerServiceServer.Update),
		unaryMethod("Delete", CustomerServiceServer.Delete),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "customers.proto",
}

// RegisterCustomerServiceServer registers srv on s
func RegisterCustomerServiceServer(s grpc.ServiceRegistrar, srv CustomerServiceServer) {
	s.RegisterService(&CustomerServiceDesc, srv)
}

func unaryMethod[Req any, Res any](name string, call func(CustomerServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodDesc {
	fullMethod := "/" + CustomerServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(CustomerServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CustomerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CustomerServiceClient is the client API for CustomerService service
type CustomerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCustomerServiceClient builds CustomerServiceClient
func NewCustomerServiceClient(cc grpc.ClientConnInterface) *CustomerServiceClient {
	return &CustomerServiceClient{cc: cc}
}

func (c *CustomerServiceClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+CustomerServiceName+"/Create", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CustomerServiceClient) FindMany(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/"+CustomerServiceName+"/FindMany", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CustomerServiceClient) FindOne(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+CustomerServiceName+"/FindOne", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CustomerServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+CustomerServiceName+"/Update", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CustomerServiceClient) Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+CustomerServiceName+"/Delete", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
