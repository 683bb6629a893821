package driver

// a browser-automation capability reduced to the four primitives the
// scraping engine actually needs. each portal is pure configuration on
// top of this interface, there are no per-portal code paths.

import (
	"context"
	"time"
)

const DefaultTimeout = time.Second * 30

type Options struct {
	// passed through to the underlying driver at session creation,
	// no behavioral difference to callers
	Headless bool
	// bound on every individual session operation, zero means
	// DefaultTimeout
	Timeout time.Duration
}

func (o Options) EffectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

type Driver interface {
	Open(ctx context.Context, opts Options) (Session, error)
}

// Session is a scoped resource, created per portal and closed before
// the next portal is touched. implementations are not required to be
// safe for concurrent use.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, selector string, value string) error
	Click(ctx context.Context, selector string) error
	// ReadTable returns the rows of the table located by `selector`,
	// one cell per entry in `columns` (all cells when columns is nil).
	ReadTable(ctx context.Context, selector string, columns []int) ([][]string, error)
	Close() error
}
