package stealth

import (
	crand "crypto/rand"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/smallyu/go-dht-stealth/internal/logging"
)

// Option configures a Generator or Detector.
type Option func(*options)

type options struct {
	rand   io.Reader
	logger log.Logger
}

// WithRand sets the entropy source for ephemeral scalars. It must be a
// cryptographically secure reader; the default is crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// WithLogger replaces the default "stealth" module logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{rand: crand.Reader}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Module("stealth")
	}
	return o
}
