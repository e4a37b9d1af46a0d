package rpcplugin

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type echoServer struct{}

func (echoServer) Process(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out := req.AsMap()
	out["echoed"] = true
	return structpb.NewStruct(out)
}

func (echoServer) Info(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"name": "echo-plugin", "version": "0.0.1"})
}

func dialBufconn(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	return conn
}

func TestRemotePluginRoundTripOverBufconn(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	grpcServer := grpc.NewServer()
	RegisterRemotePluginServer(grpcServer, echoServer{})
	go grpcServer.Serve(lis)
	defer grpcServer.Stop()

	conn := dialBufconn(t, lis)
	defer conn.Close()

	client := NewRemotePluginClient(conn)

	req, err := structpb.NewStruct(map[string]any{"from": "agent-a", "to": "agent-b", "content": "hello"})
	require.NoError(t, err)

	resp, err := client.Process(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.AsMap()["echoed"].(bool))
	require.Equal(t, "agent-a", resp.AsMap()["from"])

	info, err := client.Info(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	require.Equal(t, "echo-plugin", info.AsMap()["name"])
}

func TestToStructAndFromStructRoundTrip(t *testing.T) {
	type payload struct {
		From    string `json:"from"`
		Content string `json:"content"`
	}

	s, err := ToStruct(payload{From: "agent-a", Content: "hi"})
	require.NoError(t, err)

	var out payload
	require.NoError(t, FromStruct(s, &out))
	require.Equal(t, "agent-a", out.From)
	require.Equal(t, "hi", out.Content)
}
