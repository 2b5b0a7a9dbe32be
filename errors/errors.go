package errors

import (
	"errors"
)

var (
	ErrBufferTooShort   = errors.New("buffer too short")
	ErrVersionMismatch  = errors.New("ip version mismatch")
	ErrProtocolMismatch = errors.New("ip protocol mismatch")
	ErrInconsistent     = errors.New("inconsistent header length")
	ErrNotSupported     = errors.New("not supported")
	ErrUnknownTOSMode   = errors.New("unknown tos dump mode")

	ErrUnknownType   = errors.New("unknown icmp type")
	ErrUnknownCode   = errors.New("unknown icmp code")
	ErrNotApplicable = errors.New("icmp code not applicable")
	ErrNotEcho       = errors.New("not an icmp echo message")

	ErrUnknownSource = errors.New("unknown data source")
)

func New(msg string) error {
	return errors.New(msg)
}

func Join(err ...error) error {
	return errors.Join(err...)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
