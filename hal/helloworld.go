//go:generate go run go.uber.org/mock/mockgen -source=helloworld.go -destination=../mocks/mock_helloworld.go -package=mocks
package hal

import (
	"context"
	"fmt"
	"log/slog"

	"helloworld/domain"
	"helloworld/errors"

	"github.com/google/uuid"
)

// IHelloWorldService is the bridge operation behind the remote interface.
type IHelloWorldService interface {
	SayHello(ctx context.Context, message domain.Message) error
}

// HelloWorld writes every message to the kernel attribute. It keeps no
// state between calls: each call opens, writes once and closes.
type HelloWorld struct {
	log  *slog.Logger
	path string
	open Opener
}

func NewHelloWorld(log *slog.Logger, path string, open Opener) *HelloWorld {
	if open == nil {
		open = OpenSysfs
	}
	return &HelloWorld{log: log, path: path, open: open}
}

func (h *HelloWorld) Path() string {
	return h.path
}

// SayHello forwards the message bytes in a single write. The handle is
// closed on every path. Open failures are ErrResourceUnavailable; failed or
// short writes and close failures are ErrWriteFailure.
func (h *HelloWorld) SayHello(_ context.Context, message domain.Message) (err error) {
	requestID := uuid.NewString()
	log := h.log.With("request_id", requestID, "path", h.path)
	log.Info("sayHello called", "message", message.Text)

	file, err := h.open(h.path)
	if err != nil {
		log.Error("Failed to open sysfs", "error", err)
		return fmt.Errorf("%w: open %s: %v", errors.ErrResourceUnavailable, h.path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			log.Error("Failed to close sysfs", "error", closeErr)
			err = fmt.Errorf("%w: close %s: %v", errors.ErrWriteFailure, h.path, closeErr)
		}
	}()

	payload := message.Bytes()
	n, err := file.Write(payload)
	if err != nil {
		log.Error("Failed to write to sysfs", "error", err, "bytes", len(payload))
		return fmt.Errorf("%w: write %s: %v", errors.ErrWriteFailure, h.path, err)
	}
	if n != len(payload) {
		log.Error("Short write to sysfs", "written", n, "bytes", len(payload))
		return fmt.Errorf("%w: wrote %d of %d bytes", errors.ErrWriteFailure, n, len(payload))
	}

	log.Info("Wrote to sysfs", "message", message.Text)
	return nil
}
