package configurator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/log"
	"github.com/hidconf/hidconf-go/pkg/option"
	"github.com/hidconf/hidconf-go/pkg/wire"
)

// Configurator errors.
var (
	ErrNotSignal   = errors.New("option is not a signal option")
	ErrSignal      = errors.New("signal options carry no value")
	ErrResponse    = errors.New("response does not match request")
	ErrNoTransport = errors.New("no transport configured")
)

const defaultRetryWait = 50 * time.Millisecond

// Configurator sets, gets and triggers device options.
// It is safe for concurrent use if the Transport is.
type Configurator struct {
	codec     *codec.Codec
	transport Transport
	logger    log.Logger

	retries   int
	retryWait time.Duration

	nextID atomic.Uint32
}

// Option configures a Configurator.
type Option func(*Configurator)

// WithLogger sets the event logger for transport exchanges.
func WithLogger(l log.Logger) Option {
	return func(c *Configurator) { c.logger = log.OrNoop(l) }
}

// WithRetry retries exchanges answered with a retryable status (busy,
// timeout) up to n more times, waiting wait between attempts.
func WithRetry(n int, wait time.Duration) Option {
	return func(c *Configurator) {
		c.retries = n
		c.retryWait = wait
	}
}

// New creates a Configurator. A nil codec uses the built-in catalog.
func New(cdc *codec.Codec, t Transport, opts ...Option) *Configurator {
	if cdc == nil {
		cdc = codec.New(nil)
	}
	c := &Configurator{
		codec:     cdc,
		transport: t,
		logger:    log.NoopLogger{},
		retryWait: defaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set writes v to an option. Composite members are fetched, modified and
// written back in one record.
func (c *Configurator) Set(ctx context.Context, device, module, name string, v option.Value) error {
	ref := codec.Ref{Device: device, Module: module, Option: name, RequestID: log.NewRequestID()}

	_, d, l, err := c.codec.Resolve(ref)
	if err != nil {
		return err
	}
	if d.IsSignal() && !v.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrSignal, name)
	}

	var current []byte
	if len(l.Members()) > 1 {
		current, err = c.read(ctx, ref, wire.OpFetch, d.WireTag)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", d.WireTag, err)
		}
	}

	rec, err := c.codec.Encode(ref, v, current)
	if err != nil {
		return err
	}
	_, err = c.exchange(ctx, ref, wire.OpSet, rec.Tag, rec.Payload)
	return err
}

// Trigger sends a signal option such as peer_erase.
func (c *Configurator) Trigger(ctx context.Context, device, module, name string) error {
	ref := codec.Ref{Device: device, Module: module, Option: name}
	_, d, _, err := c.codec.Resolve(ref)
	if err != nil {
		return err
	}
	if !d.IsSignal() {
		return fmt.Errorf("%w: %s", ErrNotSignal, name)
	}
	return c.Set(ctx, device, module, name, option.Absent())
}

// Get reads the current value of an option.
func (c *Configurator) Get(ctx context.Context, device, module, name string) (option.Value, error) {
	ref := codec.Ref{Device: device, Module: module, Option: name, RequestID: log.NewRequestID()}

	_, d, _, err := c.codec.Resolve(ref)
	if err != nil {
		return option.Value{}, err
	}
	if d.IsSignal() {
		return option.Value{}, fmt.Errorf("%w: %s", ErrSignal, name)
	}

	raw, err := c.read(ctx, ref, wire.OpGet, d.WireTag)
	if err != nil {
		return option.Value{}, err
	}
	return c.codec.Decode(ref, raw)
}

// GetRecord reads every member of the record stored under tag.
func (c *Configurator) GetRecord(ctx context.Context, device, module, tag string) (map[string]option.Value, error) {
	ref := codec.Ref{Device: device, Module: module, Tag: tag, RequestID: log.NewRequestID()}

	raw, err := c.read(ctx, ref, wire.OpGet, tag)
	if err != nil {
		return nil, err
	}
	return c.codec.DecodeRecord(ref, raw)
}

func (c *Configurator) read(ctx context.Context, ref codec.Ref, op wire.Operation, tag string) ([]byte, error) {
	resp, err := c.exchange(ctx, ref, op, tag, nil)
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

func (c *Configurator) exchange(ctx context.Context, ref codec.Ref, op wire.Operation, tag string, payload []byte) (*wire.ConfigResponse, error) {
	if c.transport == nil {
		return nil, ErrNoTransport
	}
	dev, err := c.codec.Catalog().Device(ref.Device)
	if err != nil {
		return nil, err
	}

	req := &wire.ConfigRequest{
		MessageID: c.nextID.Add(1),
		Op:        op,
		VID:       dev.VID,
		PID:       dev.PID,
		Module:    ref.Module,
		Option:    ref.Option,
		Tag:       tag,
		Payload:   payload,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		c.logExchange(ref, req, log.DirectionOut, req.Payload, nil)

		resp, err := c.transport.Exchange(ctx, req)
		if err != nil {
			c.logExchange(ref, req, log.DirectionIn, nil, err)
			return nil, err
		}
		if resp.MessageID != req.MessageID {
			err := fmt.Errorf("%w: sent %d, got %d", ErrResponse, req.MessageID, resp.MessageID)
			c.logExchange(ref, req, log.DirectionIn, nil, err)
			return nil, err
		}
		if err := resp.Err(); err != nil {
			c.logExchange(ref, req, log.DirectionIn, nil, err)
			if resp.Status.Retryable() && attempt < c.retries {
				if err := sleep(ctx, c.retryWait); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		c.logExchange(ref, req, log.DirectionIn, resp.Payload, nil)
		return resp, nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Configurator) logExchange(ref codec.Ref, req *wire.ConfigRequest, dir log.Direction, payload []byte, err error) {
	e := log.Event{
		Timestamp: time.Now(),
		RequestID: ref.RequestID,
		Direction: dir,
		Layer:     log.LayerTransport,
		Category:  log.CategoryPayload,
		Device:    ref.Device,
		Module:    ref.Module,
		Option:    ref.Option,
		WireTag:   req.Tag,
	}
	if err != nil {
		e.Category = log.CategoryError
		e.Error = &log.ErrorEventData{Layer: log.LayerTransport, Message: err.Error(), Context: req.Op.String()}
	} else {
		e.Payload = log.NewPayloadEvent(payload, nil)
	}
	c.logger.Log(e)
}
