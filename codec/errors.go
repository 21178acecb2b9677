package codec

import "errors"

// Sentinel errors for the codec's taxonomy. Wrap with fmt.Errorf("%w: ...")
// for detail and check with errors.Is at call sites; the CLI boundary
// collapses all of these to a single line.
var (
	ErrIllegalInput           = errors.New("codec: illegal input")
	ErrIndexOverflow          = errors.New("codec: index overflow")
	ErrSerializationFailure   = errors.New("codec: serialization failure")
	ErrTruncated              = errors.New("codec: truncated bit stream")
	ErrIndexOutOfRange        = errors.New("codec: decoded index out of range")
	ErrDeserializationFailure = errors.New("codec: deserialization failure")
)
