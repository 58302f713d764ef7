package rings

import (
	"log"
	"sync/atomic"
)

// Lossy wraps a OneToMany queue so that Set never fails. When the queue is
// full the oldest unread token is evicted to make room for the new one. It is
// meant for telemetry style producers that prefer fresh data over complete
// data; it never pushes back on the producer.
type Lossy struct {
	q       *OneToMany
	evicter Evicter
	logger  *log.Logger
	dropped atomic.Uint64
}

// LossyOption can be used to setup the lossy queue.
type LossyOption func(*Lossy)

// WithEvicter sets the Evicter that receives every token dropped by Set or
// removed by Drain. The default discards them.
func WithEvicter(e Evicter) LossyOption {
	return LossyOption(func(l *Lossy) {
		l.evicter = e
	})
}

// WithDropLogger logs a hint to use a larger queue every time the number of
// dropped tokens reaches a power of two.
func WithDropLogger(logger *log.Logger) LossyOption {
	return LossyOption(func(l *Lossy) {
		l.logger = logger
	})
}

// NewLossy wraps q. Eviction goes through the readers' compare-and-swap path,
// which is why only a OneToMany queue can be wrapped: the writer becomes one
// more reader.
func NewLossy(q *OneToMany, opts ...LossyOption) *Lossy {
	l := &Lossy{
		q:       q,
		evicter: evicter{},
	}

	for _, o := range opts {
		o(l)
	}

	if l.evicter == nil {
		l.evicter = evicter{}
	}

	return l
}

// Set stores data, evicting the oldest tokens until there is room.
//
// Set relies on there being a single writer: every successful eviction frees
// a slot that no one else can fill, so the following push succeeds unless a
// reader already freed one. Calling Set from more than one go-routine is
// undefined behaviour.
func (l *Lossy) Set(data GenericDataType) {
	for !l.q.TryPush(data) {
		old, ok := l.q.TryNext()
		if !ok {
			// A reader emptied the queue between the two calls.
			continue
		}

		dropped := l.dropped.Add(1)
		l.evicter.Evict(old)

		if l.logger != nil && dropped&(dropped-1) == 0 {
			l.logger.Printf("lossy queue dropped %d tokens: consider using a larger queue", dropped)
		}
	}
}

// TryNext will attempt to read the oldest token. If there is no data
// available, it will return (nil, false).
func (l *Lossy) TryNext() (GenericDataType, bool) {
	return l.q.TryNext()
}

// TryNextBatch reads up to len(dst) tokens into dst and returns how many it
// read.
func (l *Lossy) TryNextBatch(dst []GenericDataType) int {
	return l.q.TryNextBatch(dst)
}

// Drain removes every resident token and hands it to the Evicter. Call it on
// shutdown so nothing owned by the tokens is leaked; dropping the queue
// itself does not release them.
func (l *Lossy) Drain() int {
	return l.q.Drain(l.evicter.Evict)
}

// Dropped returns how many tokens Set has evicted so far.
func (l *Lossy) Dropped() uint64 {
	return l.dropped.Load()
}

// Len returns the approximate number of unread tokens.
func (l *Lossy) Len() int {
	return l.q.Len()
}
