package configurator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/configurator"
	"github.com/hidconf/hidconf-go/pkg/configurator/mocks"
	"github.com/hidconf/hidconf-go/pkg/option"
	"github.com/hidconf/hidconf-go/pkg/wire"
)

// reply answers a request with status and payload, echoing its message ID.
func reply(status wire.Status, payload []byte) func(context.Context, *wire.ConfigRequest) (*wire.ConfigResponse, error) {
	return func(_ context.Context, req *wire.ConfigRequest) (*wire.ConfigResponse, error) {
		return &wire.ConfigResponse{MessageID: req.MessageID, Status: status, Payload: payload}, nil
	}
}

func isOp(op wire.Operation, tag string) any {
	return mock.MatchedBy(func(req *wire.ConfigRequest) bool {
		return req.Op == op && req.Tag == tag
	})
}

func minimumBLE(t *testing.T) []byte {
	t.Helper()
	rec, err := codec.New(nil).EncodeRecord(codec.Ref{Device: "dongle", Module: "qos", Tag: "param_ble"}, map[string]option.Value{
		"sample_count_min":       option.Int(0),
		"min_channel_count":      option.Int(2),
		"weight_crc_ok":          option.Int(-32767),
		"weight_crc_error":       option.Int(-32767),
		"ble_block_threshold":    option.Int(1),
		"eval_max_count":         option.Int(1),
		"eval_duration":          option.Int(1),
		"eval_keepout_duration":  option.Int(1),
		"eval_success_threshold": option.Int(1),
	})
	require.NoError(t, err)
	return rec.Payload
}

func TestSetCompositeFetchesFirst(t *testing.T) {
	ctx := context.Background()
	transport := mocks.NewMockTransport(t)
	current := minimumBLE(t)

	var sent *wire.ConfigRequest
	fetch := transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpFetch, "param_ble")).
		RunAndReturn(reply(wire.StatusSuccess, current)).Once()
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpSet, "param_ble")).
		Run(func(_ context.Context, req *wire.ConfigRequest) { sent = req }).
		RunAndReturn(reply(wire.StatusSuccess, nil)).Once().NotBefore(fetch)

	cfg := configurator.New(nil, transport)
	require.NoError(t, cfg.Set(ctx, "dongle", "qos", "min_channel_count", option.Int(5)))

	require.NotNil(t, sent)
	assert.Equal(t, uint16(0x1915), sent.VID)
	assert.Equal(t, uint16(0x52DC), sent.PID)
	assert.Equal(t, "min_channel_count", sent.Option)
	require.Len(t, sent.Payload, 16)
	assert.Equal(t, byte(5), sent.Payload[2])
	assert.Equal(t, current[3:], sent.Payload[3:], "siblings are written back unchanged")
}

func TestSetSingleField(t *testing.T) {
	transport := mocks.NewMockTransport(t)

	var sent *wire.ConfigRequest
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpSet, "cpi")).
		Run(func(_ context.Context, req *wire.ConfigRequest) { sent = req }).
		RunAndReturn(reply(wire.StatusSuccess, nil)).Once()

	cfg := configurator.New(nil, transport)
	require.NoError(t, cfg.Set(context.Background(), "gaming_mouse", "sensor", "cpi", option.Text("1000")))

	assert.Equal(t, uint16(0x52DE), sent.PID)
	assert.Equal(t, []byte{0xE8, 0x03, 0x00, 0x00}, sent.Payload)
}

func TestSetValidationNeverReachesTransport(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cfg := configurator.New(nil, transport)

	err := cfg.Set(context.Background(), "gaming_mouse", "sensor", "cpi", option.Int(1))
	assert.ErrorIs(t, err, option.ErrRange)

	err = cfg.Set(context.Background(), "keyboard", "ble_bond", "peer_erase", option.Int(1))
	assert.ErrorIs(t, err, configurator.ErrSignal)

	transport.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestTrigger(t *testing.T) {
	transport := mocks.NewMockTransport(t)

	var sent *wire.ConfigRequest
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpSet, "peer_erase")).
		Run(func(_ context.Context, req *wire.ConfigRequest) { sent = req }).
		RunAndReturn(reply(wire.StatusSuccess, nil)).Once()

	cfg := configurator.New(nil, transport)
	require.NoError(t, cfg.Trigger(context.Background(), "keyboard", "ble_bond", "peer_erase"))
	assert.Empty(t, sent.Payload)

	err := cfg.Trigger(context.Background(), "gaming_mouse", "sensor", "cpi")
	assert.ErrorIs(t, err, configurator.ErrNotSignal)
}

func TestGet(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpGet, "blacklist")).
		RunAndReturn(reply(wire.StatusSuccess, []byte{0x42, 0x08})).Once()
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpGet, "param_wifi")).
		RunAndReturn(reply(wire.StatusSuccess, []byte{0x64, 0x00, 0xC8, 0x00, 0x2C, 0x01})).Once()

	cfg := configurator.New(nil, transport)

	v, err := cfg.Get(context.Background(), "dongle", "qos", "wifi_blacklist")
	require.NoError(t, err)
	assert.Equal(t, "1, 6, 11", v.String())

	values, err := cfg.GetRecord(context.Background(), "dongle", "qos", "param_wifi")
	require.NoError(t, err)
	assert.True(t, values["wifi_rating_inc"].Equal(option.Int(100)))
	assert.True(t, values["wifi_present_threshold"].Equal(option.Int(200)))
	assert.True(t, values["wifi_active_threshold"].Equal(option.Int(300)))

	_, err = cfg.Get(context.Background(), "dongle", "ble_bond", "peer_search")
	assert.ErrorIs(t, err, configurator.ErrSignal)
}

func TestDeviceStatusError(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Exchange(mock.Anything, mock.Anything).
		RunAndReturn(reply(wire.StatusWriteOnly, nil)).Once()

	cfg := configurator.New(nil, transport)
	_, err := cfg.Get(context.Background(), "dongle", "qos", "channel_map")

	var se *wire.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, wire.StatusWriteOnly, se.Status)
}

func TestFetchFailureSkipsSet(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	boom := errors.New("usb stall")
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpFetch, "param_wifi")).Return(nil, boom).Once()

	cfg := configurator.New(nil, transport)
	err := cfg.Set(context.Background(), "dongle", "qos", "wifi_rating_inc", option.Int(10))
	assert.ErrorIs(t, err, boom)
}

func TestRetryOnBusy(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpSet, "cpi")).
		RunAndReturn(reply(wire.StatusBusy, nil)).Twice()
	transport.EXPECT().Exchange(mock.Anything, isOp(wire.OpSet, "cpi")).
		RunAndReturn(reply(wire.StatusSuccess, nil)).Once()

	cfg := configurator.New(nil, transport, configurator.WithRetry(2, time.Millisecond))
	require.NoError(t, cfg.Set(context.Background(), "gaming_mouse", "sensor", "cpi", option.Int(800)))
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Exchange(mock.Anything, mock.Anything).
		Run(func(context.Context, *wire.ConfigRequest) { cancel() }).
		RunAndReturn(reply(wire.StatusBusy, nil)).Once()

	cfg := configurator.New(nil, transport, configurator.WithRetry(5, time.Hour))
	err := cfg.Set(ctx, "gaming_mouse", "sensor", "cpi", option.Int(800))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMismatchedResponse(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Exchange(mock.Anything, mock.Anything).
		Return(&wire.ConfigResponse{MessageID: 999}, nil).Once()

	cfg := configurator.New(nil, transport)
	err := cfg.Set(context.Background(), "gaming_mouse", "sensor", "cpi", option.Int(800))
	assert.ErrorIs(t, err, configurator.ErrResponse)
}

func TestNoTransport(t *testing.T) {
	cfg := configurator.New(nil, nil)
	err := cfg.Set(context.Background(), "gaming_mouse", "sensor", "cpi", option.Int(800))
	assert.ErrorIs(t, err, configurator.ErrNoTransport)
}
