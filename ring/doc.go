// Package ring implements a bounded, lock-free ring buffer that hands
// pointer-sized tokens from a single producer to one or many consumers.
//
// The producer and the consumers each keep a cached copy of the other side's
// index and only refresh it when the cached value makes the ring look full
// (or empty). That keeps cross-core traffic off the common path.
//
// A ring never blocks. TryPush reports false when the ring is full and the
// TryPop family reports false (or 0) when it is empty. Retrying, sleeping or
// dropping data is left to the caller.
package ring
