// Package kernel emulates the hello_world sysfs driver in user space.
//
// The driver owns a single write-only attribute. Every write is copied into
// a fixed buffer and printed to the kernel log. Nothing survives a call.
package kernel

import (
	"bytes"
	"fmt"

	"helloworld/domain"
	"helloworld/errors"
	"helloworld/klog"
)

type Publisher struct {
	log klog.Printer
}

func NewPublisher(log klog.Printer) *Publisher {
	return &Publisher{log: log}
}

// Store is the attribute's store callback. It returns the number of bytes
// accepted, which is always len(buf) on success.
// Inputs of KernelBufferSize bytes or more are rejected and their content is
// never printed.
func (p *Publisher) Store(buf []byte) (int, error) {
	count := len(buf)
	_ = p.log.Printk(klog.LevelInfo, "hello_world: hello_print called with count=%d", count)

	if count >= domain.KernelBufferSize {
		_ = p.log.Printk(klog.LevelErr, "hello_world: input too large (%d bytes), max is %d",
			count, domain.KernelBufferSize-1)
		return 0, fmt.Errorf("%w: %d bytes, max is %d",
			errors.ErrInvalidArgument, count, domain.KernelBufferSize-1)
	}

	var tmp [domain.KernelBufferSize]byte
	copy(tmp[:], buf)
	text := tmp[:count]
	// The copy is NUL terminated, anything after an embedded NUL is dropped.
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}

	_ = p.log.Printk(klog.LevelInfo, "hello_world received: %s", text)
	return count, nil
}
