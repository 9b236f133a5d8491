package kernel

import (
	"io"
	"io/fs"
	"os"
	"sync"
	"syscall"

	"helloworld/klog"
)

// Module is the loadable driver. While unloaded its attribute does not
// exist and opens fail with fs.ErrNotExist, like a missing sysfs node.
type Module struct {
	mu        sync.RWMutex
	path      string
	publisher *Publisher
	loaded    bool
}

func NewModule(path string, publisher *Publisher) *Module {
	return &Module{path: path, publisher: publisher}
}

func (m *Module) Path() string {
	return m.path
}

// Load makes the attribute available and prints the initcall line.
func (m *Module) Load() {
	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()
	_ = m.publisher.log.Printk(klog.LevelInfo, "hello_world_sysfs: device_initcall loaded")
}

func (m *Module) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
}

func (m *Module) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// OpenFile opens the attribute for writing. Its signature matches the
// bridge's file opener so an in-process bridge can target the module
// directly.
func (m *Module) OpenFile(path string) (io.WriteCloser, error) {
	if path != m.path || !m.Loaded() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return &attributeHandle{module: m}, nil
}

// attributeHandle is one open file description. Each Write is one store.
type attributeHandle struct {
	mu     sync.Mutex
	module *Module
	closed bool
}

func (h *attributeHandle) Write(b []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, os.ErrClosed
	}
	if !h.module.Loaded() {
		return 0, &fs.PathError{Op: "write", Path: h.module.path, Err: syscall.ENODEV}
	}
	n, err := h.module.publisher.Store(b)
	if err != nil {
		return 0, &fs.PathError{Op: "write", Path: h.module.path, Err: err}
	}
	return n, nil
}

func (h *attributeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return os.ErrClosed
	}
	h.closed = true
	return nil
}
