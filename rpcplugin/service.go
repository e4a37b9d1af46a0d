// Package rpcplugin implements the gRPC wire contract remote monitors and
// risk tests use to talk to the harness coordinator, without depending on
// generated protoc-gen-go-grpc output: the service descriptor, handlers,
// and client stub are hand-written in the shape protoc-gen-go-grpc would
// emit, using google.golang.org/protobuf/types/known/structpb.Struct (a
// pre-compiled proto.Message) as the single request/response payload type.
//
// Payloads are arbitrary JSON-like documents: RemoteMonitor's Process call
// carries an event.AgentStepLog's agent name, step type, content and
// metadata, and reads back the fields of an event.Alert (an empty document
// meaning no alert); an Info call carries nothing and returns the plugin's
// descriptor.
package rpcplugin

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "sentinel.rpcplugin.RemotePlugin"

// RemotePluginServer is implemented by the process hosting a monitor or
// risk test and exposing it over gRPC.
type RemotePluginServer interface {
	Process(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Info(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RemotePluginClient is implemented by rpcClient, the stub coordinator-side
// callers use.
type RemotePluginClient interface {
	Process(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Info(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// RegisterRemotePluginServer wires srv into s under the service's method
// table, mirroring what protoc-gen-go-grpc's RegisterXServer would do.
func RegisterRemotePluginServer(s grpc.ServiceRegistrar, srv RemotePluginServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RemotePluginServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Process", Handler: processHandler},
		{MethodName: "Info", Handler: infoHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcplugin/service.go",
}

func processHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RemotePluginServer).Process(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Process"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RemotePluginServer).Process(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func infoHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RemotePluginServer).Info(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Info"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RemotePluginServer).Info(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
