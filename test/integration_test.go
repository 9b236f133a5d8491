package test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"helloworld/client"
	"helloworld/domain"
	"helloworld/errors"
	"helloworld/hal"
	"helloworld/kernel"
	"helloworld/klog"
	pb "helloworld/proto/servicemanager"
	"helloworld/servicemanager"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const (
	halDomain   = "hal_brcm_helloworldservice"
	appDomain   = "platform_app"
	halAddress  = "hal"
	manifestDoc = `
hals:
  - name: vendor.brcm.helloworld
    version: 1
    interface: IHelloWorld
    instances: [default]
`
	policyDoc = `
rules:
  - domain: hal_brcm_helloworldservice
    services: [vendor.brcm.helloworld.IHelloWorld/default]
    permissions: [add]
  - domain: platform_app
    services: [vendor.brcm.helloworld.IHelloWorld/default]
    permissions: [find]
`
)

type stack struct {
	journal  *klog.Journal
	module   *kernel.Module
	registry *servicemanager.Registry
	smLis    *bufconn.Listener
	halLis   *bufconn.Listener
	daemon   *hal.Daemon
	stopHAL  context.CancelFunc
	halDone  chan error
	log      *slog.Logger
	stopOnce sync.Once
}

func bufDial(lis *bufconn.Listener) (*grpc.ClientConn, error) {
	return grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}

// newStack starts the kernel module, the directory and an idle bridge.
func newStack(t *testing.T) *stack {
	t.Helper()
	manifest, err := servicemanager.ParseManifest([]byte(manifestDoc))
	require.NoError(t, err)
	policy, err := servicemanager.ParsePolicy([]byte(policyDoc))
	require.NoError(t, err)
	return newStackWith(t, manifest, policy)
}

// newStackWith runs the directory with the given manifest and policy, nil
// meaning none was configured.
func newStackWith(t *testing.T, manifest *servicemanager.Manifest, policy *servicemanager.Policy) *stack {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Kernel
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	journal, err := klog.NewJournal(db, log)
	req.NoError(err)
	t.Cleanup(func() {
		_ = journal.Close()
		_ = db.Close()
	})
	module := kernel.NewModule(domain.DefaultSysfsPath, kernel.NewPublisher(journal))
	module.Load()

	// Directory
	registry := servicemanager.NewRegistry(nil)
	smLis := bufconn.Listen(1024 * 1024)
	smServer := grpc.NewServer(grpc.ChainUnaryInterceptor(policy.UnaryInterceptor(log)))
	pb.RegisterIServiceManagerServer(smServer, servicemanager.NewServer(log, registry, manifest, 0))
	go func() { _ = smServer.Serve(smLis) }()
	t.Cleanup(smServer.Stop)

	return &stack{
		journal:  journal,
		module:   module,
		registry: registry,
		smLis:    smLis,
		halLis:   bufconn.Listen(1024 * 1024),
		log:      log,
	}
}

// startHAL runs the bridge daemon and waits until it serves.
func (s *stack) startHAL(t *testing.T) {
	t.Helper()
	req := require.New(t)
	conn, err := bufDial(s.smLis)
	req.NoError(err)
	t.Cleanup(func() { _ = conn.Close() })

	service := hal.NewHelloWorld(s.log, domain.DefaultSysfsPath, s.module.OpenFile)
	s.daemon = hal.NewDaemon(s.log, service, servicemanager.NewClient(conn, halDomain),
		hal.DaemonOptions{AdvertiseAddress: halAddress})
	ctx, cancel := context.WithCancel(context.Background())
	s.stopHAL = cancel
	s.halDone = make(chan error, 1)
	go func() { s.halDone <- s.daemon.Run(ctx, s.halLis) }()
	t.Cleanup(func() {
		s.stopOnce.Do(func() {
			cancel()
			<-s.halDone
		})
	})
	req.Eventually(func() bool { return s.daemon.State() == domain.Serving }, 2*time.Second, 5*time.Millisecond)
}

// app returns the client stub of a caller domain.
func (s *stack) app(t *testing.T, callerDomain string) *client.HelloWorld {
	t.Helper()
	conn, err := bufDial(s.smLis)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	dialer := func(target string) (*grpc.ClientConn, error) {
		if target != halAddress {
			return nil, fmt.Errorf("unknown target %s", target)
		}
		return bufDial(s.halLis)
	}
	return client.NewHelloWorld(s.log, servicemanager.NewClient(conn, callerDomain), dialer)
}

func (s *stack) count(t *testing.T, substr string) int {
	t.Helper()
	n, err := s.journal.Count(substr)
	require.NoError(t, err)
	return n
}

func Test_Scenario_Hello(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)

	// When the app says hello
	err := app.SayHello(context.Background(), domain.NewMessage("Hello from Android app!"))

	// Then the kernel log holds the trace and the exact text once
	req.NoError(err)
	req.Equal(1, s.count(t, "hello_world: hello_print called with count=23"))
	req.Equal(1, s.count(t, "hello_world received: Hello from Android app!"))
	req.NoError(app.CheckInterface(context.Background()))
}

func Test_Scenario_Hello_Without_Manifest(t *testing.T) {
	req := require.New(t)
	// Given a directory started without manifest nor policy
	s := newStackWith(t, nil, nil)
	s.startHAL(t)
	_, err := s.registry.Get(domain.ServiceName)
	req.NoError(err)
	app := s.app(t, appDomain)

	// When the app says hello
	err = app.SayHello(context.Background(), domain.NewMessage("hello"))

	// Then the registered bridge is resolved and the text is logged
	req.NoError(err)
	req.Equal(1, s.count(t, "hello_world received: hello"))
}

func Test_Scenario_Too_Large(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)

	// When a 200 byte message is sent
	err := app.SayHello(context.Background(), domain.NewMessage(strings.Repeat("A", 200)))

	// Then the write fails and the text never reaches the log
	req.ErrorIs(err, errors.ErrWriteFailure)
	req.Equal(1, s.count(t, "input too large (200 bytes), max is 127"))
	req.Zero(s.count(t, "hello_world received:"))
	req.Zero(s.count(t, strings.Repeat("A", 200)))

	// Then the bridge keeps serving
	req.NoError(app.SayHello(context.Background(), domain.NewMessage("after")))
}

func Test_Scenario_Boundary(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)

	req.NoError(app.SayHello(context.Background(), domain.NewMessage(strings.Repeat("b", 127))))
	req.ErrorIs(app.SayHello(context.Background(), domain.NewMessage(strings.Repeat("c", 128))), errors.ErrWriteFailure)
	req.Equal(1, s.count(t, "received: "+strings.Repeat("b", 127)))
}

func Test_Scenario_Module_Unloaded(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)

	// Given the driver is not loaded
	s.module.Unload()

	// When the app says hello
	err := app.SayHello(context.Background(), domain.NewMessage("Hello"))

	// Then the bridge reports the missing attribute and stays up
	req.ErrorIs(err, errors.ErrResourceUnavailable)
	req.Equal(domain.Serving, s.daemon.State())

	// When the driver comes back, calls succeed again
	s.module.Load()
	req.NoError(app.SayHello(context.Background(), domain.NewMessage("Hello")))
	req.Equal(1, s.count(t, "hello_world received: Hello"))
}

func Test_Scenario_Concurrent_Callers(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)
	const callers = 20

	// When many callers say hello at once
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- app.SayHello(context.Background(), domain.NewMessage(fmt.Sprintf("Hello %02d", i)))
		}()
	}
	wg.Wait()
	close(errs)

	// Then every message is logged once, unmixed
	for err := range errs {
		req.NoError(err)
	}
	for i := range callers {
		req.Equal(1, s.count(t, fmt.Sprintf("hello_world received: Hello %02d", i)))
	}
}

func Test_Scenario_Same_Message_Twice(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	app := s.app(t, appDomain)

	req.NoError(app.SayHello(context.Background(), domain.NewMessage("Hi")))
	req.NoError(app.SayHello(context.Background(), domain.NewMessage("Hi")))

	req.Equal(2, s.count(t, "hello_world received: Hi"))
}

func Test_Scenario_Resolve_Before_Registration(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	app := s.app(t, appDomain)

	// Given the bridge has not registered yet
	err := app.SayHello(context.Background(), domain.NewMessage("Hello"))

	// Then the service is unavailable and nothing is logged
	req.ErrorIs(err, errors.ErrServiceUnavailable)
	req.Zero(s.count(t, "hello_world received:"))
}

func Test_Scenario_Untrusted_Caller(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)

	// When a domain without find permission resolves the bridge
	err := s.app(t, "untrusted_app").SayHello(context.Background(), domain.NewMessage("Hello"))

	// Then the lookup is denied
	req.ErrorIs(err, errors.ErrServiceUnavailable)
	req.ErrorIs(err, errors.ErrPermissionDenied)
}

func Test_Scenario_Shutdown_Unregisters(t *testing.T) {
	req := require.New(t)
	s := newStack(t)
	s.startHAL(t)
	_, err := s.registry.Get(domain.ServiceName)
	req.NoError(err)

	// When the bridge stops
	s.stopOnce.Do(func() {
		s.stopHAL()
		req.NoError(<-s.halDone)
	})

	// Then its name is gone from the directory
	_, err = s.registry.Get(domain.ServiceName)
	req.ErrorIs(err, errors.ErrServiceNotFound)
}
