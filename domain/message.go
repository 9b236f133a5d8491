// Package domain contains the core concepts of the helloworld bridge.
// This file defines the Message travelling from a client to the kernel log.
// A Message has no identity: it is copied at each boundary and discarded
// once written.
package domain

// KernelBufferSize is the size of the publisher's local copy buffer.
// Payloads of KernelBufferSize bytes or more are rejected, one byte is kept
// for the terminating NUL.
const KernelBufferSize = 128

// Message is the transient text payload of a sayHello round trip.
type Message struct {
	Text string
}

func NewMessage(text string) Message {
	return Message{Text: text}
}

// Bytes returns the payload as written to the publisher endpoint.
func (m Message) Bytes() []byte {
	return []byte(m.Text)
}

// Len is the payload length in bytes, not runes.
func (m Message) Len() int {
	return len(m.Text)
}

// FitsKernelBuffer reports whether the publisher will accept the payload.
func (m Message) FitsKernelBuffer() bool {
	return m.Len() < KernelBufferSize
}
