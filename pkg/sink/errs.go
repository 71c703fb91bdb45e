package sink

import "errors"

var (
	// ErrHeaderWritten indicates WriteHeader was called more than once.
	ErrHeaderWritten = errors.New("sink: header already written")

	// ErrNoHeader indicates rows were appended before the header.
	ErrNoHeader = errors.New("sink: header not written")

	// ErrColumnCount indicates a row whose column count does not match the
	// header. The output format guarantees header and rows always agree.
	ErrColumnCount = errors.New("sink: row column count does not match header")
)
