package configurator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hidconf/hidconf-go/pkg/wire"
)

// deadliner is implemented by net.Conn and os.File.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// StreamTransport exchanges length-prefixed CBOR envelopes over a byte
// stream, one request at a time. When the stream supports deadlines,
// context cancellation and deadlines interrupt a blocked exchange.
type StreamTransport struct {
	mu sync.Mutex
	rw io.ReadWriter
}

// NewStreamTransport creates a transport over rw.
func NewStreamTransport(rw io.ReadWriter) *StreamTransport {
	return &StreamTransport{rw: rw}
}

// Exchange writes req and waits for the matching response frame.
func (s *StreamTransport) Exchange(ctx context.Context, req *wire.ConfigRequest) (*wire.ConfigResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stop := watch(ctx, s.rw)
	defer stop()

	if err := wire.WriteRequest(s.rw, req); err != nil {
		return nil, streamErr(ctx, "write request", err)
	}
	resp, err := wire.ReadResponse(s.rw)
	if err != nil {
		return nil, streamErr(ctx, "read response", err)
	}
	return resp, nil
}

// Close closes the underlying stream if it is an io.Closer.
func (s *StreamTransport) Close() error {
	if c, ok := s.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Handler answers one request on the device side of a stream.
type Handler interface {
	Handle(req *wire.ConfigRequest) *wire.ConfigResponse
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *wire.ConfigRequest) *wire.ConfigResponse

// Handle calls f(req).
func (f HandlerFunc) Handle(req *wire.ConfigRequest) *wire.ConfigResponse { return f(req) }

// ServeStream answers framed requests on rw with h until the peer closes
// the stream or ctx is done. A clean close returns nil.
func ServeStream(ctx context.Context, rw io.ReadWriter, h Handler) error {
	stop := watch(ctx, rw)
	defer stop()

	for {
		req, err := wire.ReadRequest(rw)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return streamErr(ctx, "read request", err)
		}

		resp := h.Handle(req)
		if resp == nil {
			resp = &wire.ConfigResponse{Status: wire.StatusInvalidPayload}
		}
		resp.MessageID = req.MessageID
		if err := wire.WriteResponse(rw, resp); err != nil {
			return streamErr(ctx, "write response", err)
		}
	}
}

// watch applies ctx's deadline to rw and expires it on cancellation.
// The returned func detaches ctx and clears the deadline.
func watch(ctx context.Context, rw io.ReadWriter) func() {
	d, ok := rw.(deadliner)
	if !ok {
		return func() {}
	}
	deadline, _ := ctx.Deadline()
	_ = d.SetDeadline(deadline)
	stop := context.AfterFunc(ctx, func() { _ = d.SetDeadline(time.Now()) })
	return func() {
		stop()
		_ = d.SetDeadline(time.Time{})
	}
}

func streamErr(ctx context.Context, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", what, ctxErr)
	}
	// The stream deadline can fire just before ctx notices its own.
	if _, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%s: %w", what, context.DeadlineExceeded)
	}
	return fmt.Errorf("%s: %w", what, err)
}
