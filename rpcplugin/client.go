package rpcplugin

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// rpcClient is the client stub protoc-gen-go-grpc would generate for
// RemotePluginServer: it only needs the Invoke surface of a ClientConn.
type rpcClient struct {
	cc grpc.ClientConnInterface
}

// NewRemotePluginClient wraps cc (typically the result of grpc.NewClient)
// as a RemotePluginClient.
func NewRemotePluginClient(cc grpc.ClientConnInterface) RemotePluginClient {
	return &rpcClient{cc: cc}
}

func (c *rpcClient) Process(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Process", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rpcClient) Info(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Info", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
