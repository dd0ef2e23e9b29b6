package rainbird

import "errors"

var (
	// ErrConfigNil indicates that a nil ClientConfig was provided.
	ErrConfigNil = errors.New("client config is nil")

	// ErrClientClosed indicates that the client has been closed and accepts no more operations.
	ErrClientClosed = errors.New("client closed")

	// ErrUnexpectedResponse indicates that the controller answered a command with a response of
	// another command.
	ErrUnexpectedResponse = errors.New("unexpected response")
)
