package subchannel

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

// fakeTransportConnector 可注入行为的传输连接器
type fakeTransportConnector struct {
	connect func(ctx context.Context, addr types.Address) (net.Conn, error)
}

func (f *fakeTransportConnector) Name() string { return "fake" }

func (f *fakeTransportConnector) Connect(ctx context.Context, addr types.Address) (net.Conn, error) {
	return f.connect(ctx, addr)
}

// waitState 轮询等待子通道到达指定状态
func waitState(t *testing.T, s *Subchannel, want types.ConnectivityState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("子通道未到达状态 %s（当前 %s）", want, s.State())
}

// TestSubchannel_ConstructNeverFails 测试构造不做 IO 且初始为空闲
func TestSubchannel_ConstructNeverFails(t *testing.T) {
	called := false
	s := New(&fakeTransportConnector{
		connect: func(context.Context, types.Address) (net.Conn, error) {
			called = true
			return nil, errors.New("unreachable")
		},
	}, interfaces.SubchannelArgs{Address: types.Address{Addr: "10.0.0.1:443"}})

	assert.Equal(t, types.StateIdle, s.State())
	assert.Equal(t, "10.0.0.1:443", s.Address().Addr)
	assert.False(t, called)
}

// TestSubchannel_ConnectSuccess 测试连接成功进入就绪
func TestSubchannel_ConnectSuccess(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	s := New(&fakeTransportConnector{
		connect: func(context.Context, types.Address) (net.Conn, error) {
			return client, nil
		},
	}, interfaces.SubchannelArgs{Address: types.Address{Addr: "a:1"}})

	s.Connect(context.Background())
	waitState(t, s, types.StateReady)

	require.NoError(t, s.Close())
	assert.Equal(t, types.StateShutdown, s.State())
}

// TestSubchannel_ConnectFailure 测试连接失败进入暂时性失败
func TestSubchannel_ConnectFailure(t *testing.T) {
	s := New(&fakeTransportConnector{
		connect: func(context.Context, types.Address) (net.Conn, error) {
			return nil, errors.New("refused")
		},
	}, interfaces.SubchannelArgs{Address: types.Address{Addr: "a:1"}})

	s.Connect(context.Background())
	waitState(t, s, types.StateTransientFailure)

	// 暂时性失败后允许再次尝试
	s.Connect(context.Background())
	waitState(t, s, types.StateTransientFailure)
}

// TestSubchannel_ConnectIdempotent 测试连接中重复 Connect 为空操作
func TestSubchannel_ConnectIdempotent(t *testing.T) {
	attempts := 0
	started := make(chan struct{})
	release := make(chan struct{})

	s := New(&fakeTransportConnector{
		connect: func(ctx context.Context, _ types.Address) (net.Conn, error) {
			attempts++
			close(started)
			<-release
			return nil, errors.New("late failure")
		},
	}, interfaces.SubchannelArgs{Address: types.Address{Addr: "a:1"}})

	s.Connect(context.Background())
	<-started
	s.Connect(context.Background())
	s.Connect(context.Background())
	close(release)

	waitState(t, s, types.StateTransientFailure)
	assert.Equal(t, 1, attempts)
}

// TestSubchannel_CloseDuringAttempt 测试关闭丢弃迟到的连接
func TestSubchannel_CloseDuringAttempt(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	release := make(chan struct{})
	s := New(&fakeTransportConnector{
		connect: func(ctx context.Context, _ types.Address) (net.Conn, error) {
			<-release
			return client, nil
		},
	}, interfaces.SubchannelArgs{Address: types.Address{Addr: "a:1"}})

	s.Connect(context.Background())
	require.NoError(t, s.Close())
	close(release)

	// 迟到的连接被关闭，状态保持 Shutdown
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, types.StateShutdown, s.State())
	_, err := client.Write([]byte("x"))
	assert.Error(t, err)
}
