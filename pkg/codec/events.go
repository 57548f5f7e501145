package codec

import (
	"time"

	"github.com/hidconf/hidconf-go/pkg/log"
	"github.com/hidconf/hidconf-go/pkg/option"
)

func (c *Codec) event(ref Ref, dir log.Direction) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		RequestID: ref.RequestID,
		Direction: dir,
		Layer:     log.LayerCodec,
		Device:    ref.Device,
		Module:    ref.Module,
		Option:    ref.Option,
		WireTag:   ref.Tag,
	}
}

func (c *Codec) emit(ref Ref, dir log.Direction, payload []byte, values map[string]option.Value) {
	e := c.event(ref, dir)
	e.Category = log.CategoryPayload
	e.Payload = log.NewPayloadEvent(payload, Strings(values))
	c.logger.Log(e)
}

func (c *Codec) fail(ref Ref, dir log.Direction, err error) error {
	ctx := "encode"
	if dir == log.DirectionIn {
		ctx = "decode"
	}
	e := c.event(ref, dir)
	e.Category = log.CategoryError
	e.Error = &log.ErrorEventData{Layer: log.LayerCodec, Message: err.Error(), Context: ctx}
	c.logger.Log(e)
	return err
}

// Strings renders each value in its human form.
func Strings(values map[string]option.Value) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v.String()
	}
	return out
}
