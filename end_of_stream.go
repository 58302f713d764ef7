package rings

var endOfStream byte

// EndOfStream is a token no payload can collide with: it points at a variable
// private to this package. Writers push it to tell readers nothing follows.
var EndOfStream = GenericDataType(&endOfStream)

// IsEndOfStream reports whether data is the EndOfStream token.
func IsEndOfStream(data GenericDataType) bool {
	return data == EndOfStream
}
