package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Resolution
	InvalidIdentifier   Code = "invalid_identifier"
	InvalidMapperResult Code = "invalid_mapper_result"

	// Configuration
	InvalidMode Code = "invalid_mode"
	InvalidPull Code = "invalid_pull"

	// Peripherals / service plumbing
	UnknownPeriph  Code = "unknown_periph"
	UnknownPin     Code = "unknown_pin"
	InvalidPayload Code = "invalid_payload"
	Unsupported    Code = "unsupported"

	Error Code = "error" // generic fallback
)

// E keeps a code together with the operation and the offending input's
// display form, plus an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.InvalidMode) match wrapped codes.
func (e *E) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.C == c
	}
	return false
}

// New builds an *E for op with a display-form message.
func New(c Code, op, msg string) *E {
	return &E{C: c, Op: op, Msg: msg}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
