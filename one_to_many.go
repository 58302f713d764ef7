package rings

import (
	"code.cloudfoundry.org/go-rings/ring"
)

// OneToMany queue is optimal for a single writer (go-routine A) and many
// readers (go-routines B-n). Readers race for tokens with compare-and-swap and
// every token is handed to exactly one of them. It is not thread safe for
// multiple writers.
type OneToMany struct {
	r *ring.Ring
}

// NewOneToMany creates a new queue with room for size tokens. Options may
// select the addressing; the queue is always built for many readers.
func NewOneToMany(size int, opts ...ring.Option) (*OneToMany, error) {
	r, err := ring.New(size, append(opts, ring.WithManyReaders())...)
	if err != nil {
		return nil, err
	}
	return &OneToMany{r: r}, nil
}

// TryPush stores data in the next slot of the ring buffer. It returns false
// when the buffer is full. Only the single writer may call it.
func (q *OneToMany) TryPush(data GenericDataType) bool {
	return q.r.TryPush(data)
}

// TryNext will attempt to read from the next slot of the ring buffer.
// If there is no data available, it will return (nil, false).
func (q *OneToMany) TryNext() (data GenericDataType, ok bool) {
	return q.r.TryPop()
}

// TryNextBatch claims up to len(dst) consecutive tokens in one go and returns
// how many it claimed. Batches taken by different readers never overlap.
func (q *OneToMany) TryNextBatch(dst []GenericDataType) int {
	return q.r.TryPopMany(dst)
}

// Drain reads until the queue is empty and passes every token to fn.
func (q *OneToMany) Drain(fn func(GenericDataType)) int {
	return q.r.Drain(fn)
}

// Len returns the approximate number of unread tokens.
func (q *OneToMany) Len() int { return q.r.Len() }

// Cap returns the size the queue was created with.
func (q *OneToMany) Cap() int { return q.r.Cap() }

// Stats returns how many tokens were written and read so far.
func (q *OneToMany) Stats() ring.Stats { return q.r.Stats() }
