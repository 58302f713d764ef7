package rings

import (
	"context"
	"time"
)

// Diode is any queue whose writer never fails, such as Lossy.
type Diode interface {
	Set(GenericDataType)
	TryNext() (GenericDataType, bool)
	TryNextBatch([]GenericDataType) int
}

// Assert Lossy implements Diode.
var _ Diode = (*Lossy)(nil)

// Poller will poll a diode until a value is available. It is the sleeping
// retry policy the queues themselves leave to the caller.
type Poller struct {
	Diode
	interval time.Duration
	ctx      context.Context
}

// PollerConfigOption can be used to setup the poller
type PollerConfigOption func(*Poller)

// WithPollingInterval sets the interval at which the diode is queried
// for new data. The default is 10ms.
func WithPollingInterval(interval time.Duration) PollerConfigOption {
	return PollerConfigOption(func(c *Poller) {
		c.interval = interval
	})
}

// WithPollingContext sets the context to cancel any retrieval (Next() and
// NextBatch()). It is checked between polls. Default is
// context.Background().
func WithPollingContext(ctx context.Context) PollerConfigOption {
	return PollerConfigOption(func(c *Poller) {
		c.ctx = ctx
	})
}

// NewPoller wraps a diode to allow accessing data via polling
func NewPoller(d Diode, opts ...PollerConfigOption) *Poller {
	p := &Poller{
		Diode:    d,
		interval: 10 * time.Millisecond,
		ctx:      context.Background(),
	}

	for _, o := range opts {
		o(p)
	}

	return p
}

// Next polls the diode until data is available. If the context is done, nil
// is returned.
func (p *Poller) Next() GenericDataType {
	for {
		data, ok := p.Diode.TryNext()
		if ok {
			return data
		}
		if !p.sleep() {
			return nil
		}
	}
}

// NextBatch polls the diode until at least one token is available and reads
// up to len(dst) of them. It returns 0 once the context is done.
func (p *Poller) NextBatch(dst []GenericDataType) int {
	if len(dst) == 0 {
		return 0
	}
	for {
		if n := p.Diode.TryNextBatch(dst); n > 0 {
			return n
		}
		if !p.sleep() {
			return 0
		}
	}
}

func (p *Poller) sleep() bool {
	if p.ctx.Err() != nil {
		return false
	}
	time.Sleep(p.interval)
	return p.ctx.Err() == nil
}
