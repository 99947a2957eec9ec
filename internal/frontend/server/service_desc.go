package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mote.v1.FrontEnd"

// Full method names
const (
	ParseMethod    = "/" + ServiceName + "/Parse"
	TokenizeMethod = "/" + ServiceName + "/Tokenize"
)

// FrontEndServer is the server API of the front end service. Requests and
// responses are google.protobuf.Struct messages.
type FrontEndServer interface {
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Tokenize(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterFrontEndServer registers srv with the gRPC server
func RegisterFrontEndServer(s grpc.ServiceRegistrar, srv FrontEndServer) {
	s.RegisterService(&FrontEndServiceDesc, srv)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontEndServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParseMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontEndServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func tokenizeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontEndServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TokenizeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontEndServer).Tokenize(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// FrontEndServiceDesc is the grpc.ServiceDesc for the front end service
var FrontEndServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FrontEndServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler:    parseHandler,
		},
		{
			MethodName: "Tokenize",
			Handler:    tokenizeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mote/v1/frontend.proto",
}
