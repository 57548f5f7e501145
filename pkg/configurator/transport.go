package configurator

import (
	"context"

	"github.com/hidconf/hidconf-go/pkg/wire"
)

// Transport exchanges one configuration request with a device.
//
// Exchange blocks until the device answers, ctx is done, or the transport
// fails. A non-success device status is reported in the response, not as
// an error.
type Transport interface {
	Exchange(ctx context.Context, req *wire.ConfigRequest) (*wire.ConfigResponse, error)
}
