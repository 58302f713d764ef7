package rings

import (
	"code.cloudfoundry.org/go-rings/ring"
)

// GenericDataType is the data type the queues operate on.
type GenericDataType = ring.GenericData

// OneToOne queue is meant to be used by a single writer (go-routine A) and a
// single reader (go-routine B). It is not thread safe if used otherwise.
type OneToOne struct {
	r *ring.Ring
}

// NewOneToOne creates a new queue with room for size tokens. Options may
// select the addressing; the queue is always built for a single reader.
func NewOneToOne(size int, opts ...ring.Option) (*OneToOne, error) {
	r, err := ring.New(size, append(opts, ring.WithSingleReader())...)
	if err != nil {
		return nil, err
	}
	return &OneToOne{r: r}, nil
}

// TryPush stores data in the next slot of the ring buffer. It returns false
// when the buffer is full.
func (q *OneToOne) TryPush(data GenericDataType) bool {
	return q.r.TryPush(data)
}

// TryNext will attempt to read from the next slot of the ring buffer.
// If there is no data available, it will return (nil, false).
func (q *OneToOne) TryNext() (data GenericDataType, ok bool) {
	return q.r.TryPop()
}

// TryNextBatch reads up to len(dst) tokens into dst and returns how many it
// read.
func (q *OneToOne) TryNextBatch(dst []GenericDataType) int {
	return q.r.TryPopMany(dst)
}

// Drain reads every remaining token and passes it to fn. It must be called
// from the reader.
func (q *OneToOne) Drain(fn func(GenericDataType)) int {
	return q.r.Drain(fn)
}

// Len returns the approximate number of unread tokens.
func (q *OneToOne) Len() int { return q.r.Len() }

// Cap returns the size the queue was created with.
func (q *OneToOne) Cap() int { return q.r.Cap() }

// Stats returns how many tokens were written and read so far.
func (q *OneToOne) Stats() ring.Stats { return q.r.Stats() }
