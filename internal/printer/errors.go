// internal/printer/errors.go
package printer

import "fmt"

// NetworkError reports a transport-level failure reaching the printer:
// connection refused, DNS failure, timeout, or a non-OK HTTP status.
// The request is never retried; the caller decides how to present it.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a status document that failed structural
// deserialization of the consumable subtree. Field-level extraction misses
// are absorbed inside the extractor and never surface as a ParseError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed status document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
