package html2rsx

// ParseError is returned when the input cannot be parsed as markup. It is
// the only error kind Convert produces.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "failed to parse html"
	}
	return "failed to parse html: " + e.Err.Error()
}

// Unwrap returns the underlying parser diagnostic.
func (e *ParseError) Unwrap() error {
	return e.Err
}
