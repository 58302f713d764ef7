package rings

// Evicter is handed every token the Lossy queue throws away, so whoever owns
// what the token points at can release it.
type Evicter interface {
	Evict(data GenericDataType)
}

// EvictFunc type is an adapter to allow the use of ordinary functions as
// Evict handlers.
type EvictFunc func(data GenericDataType)

// Evict calls f(data)
func (f EvictFunc) Evict(data GenericDataType) {
	f(data)
}

// Assert evicter implements Evicter.
var _ Evicter = evicter{}

// evicter drops tokens on the floor. Just in case no Evicter is set.
type evicter struct{}

func (evicter) Evict(GenericDataType) {}
