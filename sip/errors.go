package sip

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand indicates that the symbolic command name is not in the registry.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidParameters indicates that the command parameters don't match the declared
	// parameter slots or the request length of the command.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidRegistry indicates that a command or response table violates a length invariant.
	ErrInvalidRegistry = errors.New("invalid registry")
)

var (
	// ErrTransportTimeout indicates that the controller didn't answer within the request timeout.
	// It is retryable.
	ErrTransportTimeout = errors.New("transport timeout")

	// ErrTransportConnection indicates that the connection was reset or refused. It is retryable.
	ErrTransportConnection = errors.New("transport connection error")

	// ErrHTTPStatus indicates a non-2xx HTTP status. See HTTPStatusError.
	ErrHTTPStatus = errors.New("http status error")
)

var (
	// ErrDecryptOrParse indicates that a reply couldn't be decrypted, or that the decrypted
	// plaintext is not a JSON object.
	ErrDecryptOrParse = errors.New("decrypt or parse error")

	// ErrNoResponse indicates that the controller returned an empty reply.
	ErrNoResponse = errors.New("no response received")

	// ErrMalformedEnvelope indicates that the reply carries neither a result nor an error object.
	ErrMalformedEnvelope = errors.New("invalid response")

	// ErrControllerError indicates that the controller answered with an error object. See ControllerError.
	ErrControllerError = errors.New("controller error")

	// ErrUnknownResponseCode indicates that the response opcode is not in the registry.
	ErrUnknownResponseCode = errors.New("response code not found")

	// ErrInvalidResponseLength indicates that the response length doesn't match the registry.
	ErrInvalidResponseLength = errors.New("invalid response length")

	// ErrNotAcknowledged indicates that the controller replied with a NAK. See NAKError.
	ErrNotAcknowledged = errors.New("command not acknowledged")
)

// IsRetryable reports whether err is a transient network fault that may be retried in place.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransportTimeout) || errors.Is(err, ErrTransportConnection)
}

// HTTPStatusError is returned when the controller answers with a non-2xx HTTP status.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrHTTPStatus, e.Status)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// ControllerError is returned when the controller replies with a JSON-RPC error object.
type ControllerError struct {
	Code    int
	Message string
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrControllerError, e.Code, e.Message)
}

func (e *ControllerError) Is(target error) bool { return target == ErrControllerError }

// NAKError is returned when the controller rejects a command with a NotAcknowledge response.
type NAKError struct {
	// CommandEcho is the opcode of the rejected command.
	CommandEcho byte
	// Code is the NAK reason reported by the controller.
	Code uint8
}

func (e *NAKError) Error() string {
	return fmt.Sprintf("%s: command %02X, nak code %d", ErrNotAcknowledged, e.CommandEcho, e.Code)
}

func (e *NAKError) Is(target error) bool { return target == ErrNotAcknowledged }
