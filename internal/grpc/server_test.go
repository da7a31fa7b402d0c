package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type switchPinger struct {
	down atomic.Bool
}

func (p *switchPinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("database unreachable")
	}
	return nil
}

func TestServer_Health(t *testing.T) {
	pinger := &switchPinger{}
	server, err := NewServer(0, pinger)
	require.NoError(t, err)
	go func() { _ = server.Start() }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(fmt.Sprintf("127.0.0.1:%d", server.listener.Addr().(*net.TCPAddr).Port), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	pinger.down.Store(true)
	server.check(ctx)

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
