package kernel

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"helloworld/errors"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// sysfs reports a page for every attribute regardless of content.
const attributeSize = 4096

// Options configures the sysfs-like FUSE mount.
type Options struct {
	// Mountpoint plays the role of /sys. The attribute appears at
	// <Mountpoint>/kernel/hello_world/hello.
	Mountpoint string

	Publisher *Publisher

	// AllowOther lets processes of other users reach the attribute.
	// Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool

	Logger *slog.Logger
}

// AttributePath returns where the attribute appears under a mountpoint.
func AttributePath(mountpoint string) string {
	return filepath.Join(mountpoint, "kernel", "hello_world", "hello")
}

// Mount exposes the publisher as a write-only file. The caller must
// Unmount the returned server.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	// Attributes never change shape, only the negative lookups are short lived.
	entryTimeout := time.Hour
	attrTimeout := time.Hour
	negativeTimeout := 100 * time.Millisecond

	root := &sysRoot{options: &options}
	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     "hello_world",
			Name:       "sysfs",
			AllowOther: options.AllowOther,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Debug("FUSE attribute mounted", "path", AttributePath(options.Mountpoint))
	return server, nil
}

type sysRoot struct {
	gofuse.Inode
	options *Options
}

var _ gofuse.InodeEmbedder = (*sysRoot)(nil)
var _ gofuse.NodeOnAdder = (*sysRoot)(nil)

func (r *sysRoot) OnAdd(ctx context.Context) {
	kernelDir := r.NewPersistentInode(ctx, &gofuse.Inode{}, gofuse.StableAttr{Mode: syscall.S_IFDIR})
	r.AddChild("kernel", kernelDir, true)

	helloDir := kernelDir.NewPersistentInode(ctx, &gofuse.Inode{}, gofuse.StableAttr{Mode: syscall.S_IFDIR})
	kernelDir.AddChild("hello_world", helloDir, true)

	attribute := helloDir.NewPersistentInode(ctx, &attributeNode{options: r.options}, gofuse.StableAttr{Mode: syscall.S_IFREG})
	helloDir.AddChild("hello", attribute, true)
}

// attributeNode is the write-only "hello" attribute, mode 0200.
type attributeNode struct {
	gofuse.Inode
	options *Options
}

var _ gofuse.InodeEmbedder = (*attributeNode)(nil)
var _ gofuse.NodeGetattrer = (*attributeNode)(nil)
var _ gofuse.NodeSetattrer = (*attributeNode)(nil)
var _ gofuse.NodeOpener = (*attributeNode)(nil)
var _ gofuse.NodeWriter = (*attributeNode)(nil)

func (a *attributeNode) Getattr(_ context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFREG | 0o200
	out.Size = attributeSize
	return 0
}

// Setattr accepts the truncation issued by shell redirections and
// otherwise ignores it.
func (a *attributeNode) Setattr(_ context.Context, _ gofuse.FileHandle, _ *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFREG | 0o200
	out.Size = attributeSize
	return 0
}

// Open refuses every access mode but write-only: there is no show callback.
func (a *attributeNode) Open(_ context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if flags&syscall.O_ACCMODE != syscall.O_WRONLY {
		return nil, 0, syscall.EACCES
	}
	// Direct I/O so every write(2) reaches Store unbuffered.
	return nil, fuse.FOPEN_DIRECT_IO, 0
}

// Write runs the store callback. The offset is ignored: each write is a
// complete, independent message.
func (a *attributeNode) Write(_ context.Context, _ gofuse.FileHandle, data []byte, _ int64) (uint32, syscall.Errno) {
	n, err := a.options.Publisher.Store(data)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidArgument) {
			return 0, syscall.EINVAL
		}
		a.options.Logger.Error("hello_world: store failed", "error", err)
		return 0, syscall.EIO
	}
	return uint32(n), 0
}
