package domain

import (
	"encoding/hex"
	"net"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

const (
	// InterfaceDescriptor is the fully qualified name of the frozen interface.
	InterfaceDescriptor = "vendor.brcm.helloworld.IHelloWorld"
	InstanceName        = "default"
	// ServiceName is the instance name the bridge registers under.
	ServiceName = InterfaceDescriptor + "/" + InstanceName

	// InterfaceVersion of the frozen interface. Any change to the method
	// table requires a new version.
	InterfaceVersion int32 = 1

	DefaultSysfsPath = "/sys/kernel/hello_world/hello"
)

// frozenAPI is the API dump of version 1. It must never be edited.
var frozenAPI = []string{
	"package vendor.brcm.helloworld;",
	"@VintfStability",
	"interface IHelloWorld {",
	"  void sayHello(in String message);",
	"}",
}

// InterfaceHash identifies the frozen method table of InterfaceVersion.
// Clients compare it with the value reported by the remote service.
func InterfaceHash() string {
	sum := blake3.Sum256([]byte(strings.Join(frozenAPI, "\n")))
	return hex.EncodeToString(sum[:20])
}

// ServiceInstance builds "<package>.<interface>/<instance>".
func ServiceInstance(pkg, iface, instance string) string {
	return pkg + "." + iface + "/" + instance
}

// Registration is a directory entry binding a service name to the address
// of the process serving it.
type Registration struct {
	Name         string
	Address      string
	PID          int32
	RegisteredAt time.Time
}

// Endpoint returns the gRPC dial target for a listener address.
func Endpoint(addr net.Addr) string {
	switch addr.Network() {
	case "unix", "unixpacket":
		return "unix:" + addr.String()
	default:
		return addr.String()
	}
}
