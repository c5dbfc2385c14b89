package consensus

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ENT_ERR_PARSE      ErrorCode = "ENT_ERR_PARSE"
	ENT_ERR_BWT_DECODE ErrorCode = "ENT_ERR_BWT_DECODE"

	REQ_ERR_INVALID ErrorCode = "REQ_ERR_INVALID"

	PROOF_ERR_MALFORMED       ErrorCode = "PROOF_ERR_MALFORMED"
	PROOF_ERR_CHAIN           ErrorCode = "PROOF_ERR_CHAIN"
	PROOF_ERR_TARGETS_MISSING ErrorCode = "PROOF_ERR_TARGETS_MISSING"
)

type CoreError struct {
	Code ErrorCode
	Msg  string
}

func (e *CoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Errf builds a CoreError with a formatted message.
func Errf(code ErrorCode, format string, args ...any) error {
	return &CoreError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
