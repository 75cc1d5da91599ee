package wakeonlan

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUDPSender_Send(t *testing.T) {
	network := &fakeNetwork{}
	s := &UDPSender{Listen: network.listen}

	packet := Build(MAC{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})
	require.NoError(t, s.Send(context.Background(), packet[:], 9))

	sent := network.datagrams()
	require.Len(t, sent, 1)
	assert.Equal(t, packet[:], sent[0].payload)
	assert.Equal(t, "255.255.255.255:9", sent[0].addr.String())
	assert.True(t, network.allClosedOnce())
}

func TestUDPSender_CustomBroadcast(t *testing.T) {
	network := &fakeNetwork{}
	s := &UDPSender{
		Broadcast: net.ParseIP("192.168.1.255"),
		Listen:    network.listen,
	}

	packet := Build(MAC{})
	require.NoError(t, s.Send(context.Background(), packet[:], 7))

	sent := network.datagrams()
	require.Len(t, sent, 1)
	assert.Equal(t, "192.168.1.255:7", sent[0].addr.String())
}

func TestUDPSender_Errors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		network *fakeNetwork
		wantOp  string
		wantErr error
	}{
		{
			name:    "listen fails",
			ctx:     context.Background(),
			network: &fakeNetwork{listenErr: syscall.EACCES},
			wantOp:  "listen udp",
			wantErr: syscall.EACCES,
		},
		{
			name:    "write fails",
			ctx:     context.Background(),
			network: &fakeNetwork{writeErr: syscall.ENETUNREACH},
			wantOp:  "write",
			wantErr: syscall.ENETUNREACH,
		},
		{
			name:    "short write",
			ctx:     context.Background(),
			network: &fakeNetwork{shortWrite: true},
			wantOp:  "write",
			wantErr: io.ErrShortWrite,
		},
		{
			name:    "cancelled",
			ctx:     cancelled,
			network: &fakeNetwork{},
			wantOp:  "write",
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UDPSender{Listen: tt.network.listen}
			packet := Build(MAC{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})

			err := s.Send(tt.ctx, packet[:], 9)
			require.ErrorIs(t, err, ErrTransport)
			require.ErrorIs(t, err, tt.wantErr)

			var terr *TransportError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.wantOp, terr.Op)

			assert.True(t, tt.network.allClosedOnce(), "socket must be closed on every path")
		})
	}
}

func TestUDPSender_AppliesDeadline(t *testing.T) {
	network := &fakeNetwork{}
	s := &UDPSender{Listen: network.listen}

	deadline := time.Now().Add(time.Minute)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	packet := Build(MAC{})
	require.NoError(t, s.Send(ctx, packet[:], 9))

	require.Equal(t, 1, network.listenCount())
	assert.True(t, network.conns[0].writeDeadline.Equal(deadline))
}

func TestUDPSender_Loopback(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	port := pc.LocalAddr().(*net.UDPAddr).Port

	s := &UDPSender{Broadcast: net.IPv4(127, 0, 0, 1)}
	packet := Build(MAC{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, s.Send(ctx, packet[:], uint16(port)))

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, packet[:], buf[:n])
}

func TestTransportError_Error(t *testing.T) {
	err := (&TransportError{Op: "write", Err: errors.New("boom")}).Error()
	assert.Equal(t, "write: boom", err)
}
