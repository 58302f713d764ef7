package ring

// Addressing selects how a monotonic index is mapped onto a slot.
type Addressing int

const (
	// Mask maps an index with a bitwise AND against size-1. The ring size
	// must be a power of two.
	Mask Addressing = iota

	// Modulo maps an index with a division remainder and accepts any
	// positive size.
	Modulo
)

func (a Addressing) String() string {
	switch a {
	case Mask:
		return "mask"
	case Modulo:
		return "modulo"
	default:
		return "unknown"
	}
}

type options struct {
	addressing   Addressing
	singleReader bool
}

// Option configures how we set up the ring.
type Option interface {
	apply(*options)
}

// optionFunc wraps a function that modifies options into an implementation of
// the Option interface.
type optionFunc struct {
	f func(*options)
}

func (of *optionFunc) apply(o *options) {
	of.f(o)
}

// WithAddressing returns an Option which sets the index to slot mapping. The
// default is Mask.
func WithAddressing(a Addressing) Option {
	return &optionFunc{
		f: func(o *options) {
			o.addressing = a
		},
	}
}

// WithModuloAddressing is shorthand for WithAddressing(Modulo).
func WithModuloAddressing() Option {
	return WithAddressing(Modulo)
}

// WithSingleReader returns an Option which tells the ring that exactly one
// go-routine will ever consume from it. Pops then skip the compare-and-swap.
// Using such a ring from more than one consumer is undefined behaviour.
func WithSingleReader() Option {
	return &optionFunc{
		f: func(o *options) {
			o.singleReader = true
		},
	}
}

// WithManyReaders returns an Option which makes the ring safe for any number
// of concurrent consumers. This is the default.
func WithManyReaders() Option {
	return &optionFunc{
		f: func(o *options) {
			o.singleReader = false
		},
	}
}
