package configurator

import (
	"errors"
	"sync"

	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/wire"
)

// Emulator is an in-memory device that answers configuration requests
// for one device type of a catalog. It stores the last record written
// under each module and tag and checks written payloads against the
// catalog layouts. Signal writes are accepted and not stored.
type Emulator struct {
	codec  *codec.Codec
	device string

	mu      sync.Mutex
	records map[string][]byte
}

// NewEmulator creates an emulator for deviceType. A nil codec uses the
// built-in catalog.
func NewEmulator(cdc *codec.Codec, deviceType string) *Emulator {
	if cdc == nil {
		cdc = codec.New(nil)
	}
	return &Emulator{codec: cdc, device: deviceType, records: make(map[string][]byte)}
}

// Store sets the record held under module and tag.
func (e *Emulator) Store(module, tag string, record []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records[module+"/"+tag] = append([]byte(nil), record...)
}

// Record returns the record held under module and tag.
func (e *Emulator) Record(module, tag string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.records[module+"/"+tag]
	return append([]byte(nil), r...), ok
}

// Handle answers req.
func (e *Emulator) Handle(req *wire.ConfigRequest) *wire.ConfigResponse {
	resp := &wire.ConfigResponse{MessageID: req.MessageID}

	dev, err := e.codec.Catalog().Device(e.device)
	if err != nil || dev.VID != req.VID || dev.PID != req.PID {
		resp.Status = wire.StatusDisconnected
		return resp
	}
	if _, ok := dev.Module(req.Module); !ok {
		resp.Status = wire.StatusUnknownModule
		return resp
	}

	ref := codec.Ref{Device: e.device, Module: req.Module, Tag: req.Tag}
	switch req.Op {
	case wire.OpSet:
		if _, err := e.codec.DecodeRecord(ref, req.Payload); err != nil {
			resp.Status = wire.StatusInvalidPayload
			if errors.Is(err, layout.ErrUnknownLayout) {
				resp.Status = wire.StatusUnknownOption
			}
			return resp
		}
		if len(req.Payload) > 0 {
			e.Store(req.Module, req.Tag, req.Payload)
		}

	default:
		record, ok := e.Record(req.Module, req.Tag)
		if !ok {
			resp.Status = wire.StatusUnknownOption
			return resp
		}
		resp.Payload = record
	}
	return resp
}
