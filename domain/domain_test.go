package domain

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServiceName(t *testing.T) {
	require.Equal(t, "vendor.brcm.helloworld.IHelloWorld/default", ServiceName)
	require.Equal(t, ServiceName, ServiceInstance("vendor.brcm.helloworld", "IHelloWorld", InstanceName))
}

func TestInterfaceHash_Is_Stable(t *testing.T) {
	req := require.New(t)

	hash := InterfaceHash()

	req.Len(hash, 40)
	req.Equal(hash, InterfaceHash())
}

func TestMessage_FitsKernelBuffer(t *testing.T) {
	req := require.New(t)

	req.True(NewMessage("").FitsKernelBuffer())
	req.True(NewMessage(strings.Repeat("a", 127)).FitsKernelBuffer())
	req.False(NewMessage(strings.Repeat("a", 128)).FitsKernelBuffer())
	// Length is counted in bytes
	req.Equal(2, NewMessage("é").Len())
}

func TestEndpoint(t *testing.T) {
	req := require.New(t)

	req.Equal("unix:/run/hw.sock", Endpoint(&net.UnixAddr{Name: "/run/hw.sock", Net: "unix"}))
	req.Equal("127.0.0.1:7041", Endpoint(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 7041}))
}

func TestBridgeState_String(t *testing.T) {
	require.Equal(t, "UNREGISTERED", Unregistered.String())
	require.Equal(t, "SERVING", Serving.String())
}
