package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

type ErrorKind string

const (
	ErrorTimeout        ErrorKind = "timeout"
	ErrorDNS            ErrorKind = "dns"
	ErrorConnection     ErrorKind = "connection"
	ErrorCancelled      ErrorKind = "cancelled"
	ErrorInvalidRequest ErrorKind = "invalid request"
	ErrorOther          ErrorKind = "other"
)

// RequestError is a transport failure. It ends the affected test as errored
// and is never retried.
type RequestError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func NewCancelledError() *RequestError {
	return &RequestError{Kind: ErrorCancelled, Err: context.Canceled}
}

func classifyError(err error, timeout time.Duration) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	var dnsErr *net.DNSError
	var netErr net.Error
	var opErr *net.OpError

	switch {
	case errors.Is(err, context.Canceled):
		return NewCancelledError()
	case errors.As(err, &dnsErr):
		return &RequestError{Kind: ErrorDNS, Message: fmt.Sprintf("could not resolve host %s", dnsErr.Name), Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		msg := "request timed out"
		if timeout > 0 {
			msg = fmt.Sprintf("request timed out after %s", timeout)
		}
		return &RequestError{Kind: ErrorTimeout, Message: msg, Err: err}
	case errors.As(err, &opErr):
		return &RequestError{Kind: ErrorConnection, Message: opErr.Error(), Err: err}
	default:
		return &RequestError{Kind: ErrorOther, Message: err.Error(), Err: err}
	}
}
