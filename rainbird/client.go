package rainbird

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"syscall"

	"github.com/arloliu/go-rainbird/internal/pool"
	"github.com/arloliu/go-rainbird/logger"
	"github.com/arloliu/go-rainbird/sip"
)

// maxReplySize bounds the size of a controller reply.
const maxReplySize = 64 * 1024

// Client talks to one irrigation controller.
//
// A Client is safe for concurrent use, operations are serialized internally.
type Client struct {
	cfg *ClientConfig

	// mu guards registry and logger, which UpdateConfigOptions may replace.
	mu       sync.RWMutex
	registry *sip.Registry
	logger   logger.Logger

	queue   *serializer
	metrics ClientMetrics
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	cfg.mu.RLock()
	registry := cfg.registry
	cfg.mu.RUnlock()

	c := &Client{
		cfg:      cfg,
		registry: registry,
		logger:   newClientLogger(cfg),
	}
	c.queue = newSerializer(c.logger, &c.metrics)

	return c, nil
}

// newClientLogger returns the logger of a client of cfg. In debug mode it's a child of the
// configured logger at debug level, the configured logger keeps its level.
func newClientLogger(cfg *ClientConfig) logger.Logger {
	cfg.mu.RLock()
	l, debug, host := cfg.logger, cfg.debug, cfg.host
	cfg.mu.RUnlock()

	if debug {
		l = logger.WithLevel(l, logger.DebugLevel)
	}

	return l.With("host", host)
}

// GetLogger returns the logger of the client.
func (c *Client) GetLogger() logger.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.logger
}

// Registry returns the command and response registry of the client.
func (c *Client) Registry() *sip.Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry
}

// GetMetrics returns the metrics of the client.
func (c *Client) GetMetrics() *ClientMetrics {
	return &c.metrics
}

// Config returns the configuration of the client.
func (c *Client) Config() *ClientConfig {
	return c.cfg
}

// Close waits for the queued operations to complete. Operations submitted after Close fail with
// ErrClientClosed.
func (c *Client) Close() error {
	c.queue.close()
	return nil
}

// UpdateConfigOptions applies options to the client configuration.
//
// The update is queued like an operation, so it never overlaps a request to the controller. The
// options are applied all or nothing: if one of them is invalid, the configuration is left as it
// was. WithLogger and WithDebug rebuild the client logger, WithRegistry replaces the registry
// used by subsequent operations.
func (c *Client) UpdateConfigOptions(opts ...ClientOption) error {
	_, err := c.queue.submit("UpdateConfigOptions", func() (*sip.Response, error) {
		return nil, c.updateConfig(opts)
	})

	return err
}

func (c *Client) updateConfig(opts []ClientOption) error {
	var rebuildLogger, swapRegistry bool

	staged := c.cfg.clone()
	for _, opt := range opts {
		clientOpt, ok := opt.(*clientOptFunc)
		if !ok {
			return errors.New("invalid ClientOption type")
		}

		switch clientOpt.name {
		case "WithLogger", "WithDebug":
			rebuildLogger = true

		case "WithRegistry":
			swapRegistry = true
		}

		if err := clientOpt.apply(staged); err != nil {
			return err
		}
	}
	c.cfg.update(staged)

	if rebuildLogger {
		l := newClientLogger(c.cfg)
		c.mu.Lock()
		c.logger = l
		c.mu.Unlock()
		c.queue.setLogger(l)
	}

	if swapRegistry {
		c.mu.Lock()
		c.registry = staged.registry
		c.mu.Unlock()
	}

	return nil
}

// Do sends the named command with the given hex parameters and returns the decoded response.
//
// The command is validated against the registry before it is queued: an unknown name fails with
// sip.ErrInvalidCommand and parameters that don't fit the command fail with
// sip.ErrInvalidParameters, without any network I/O.
//
// A NotAcknowledge response is returned as a *sip.NAKError.
func (c *Client) Do(command string, params ...string) (*sip.Response, error) {
	c.metrics.incOperationCount()

	cmd, err := c.Registry().ResolveCommand(command)
	if err != nil {
		c.metrics.incOperationErrCount()
		return nil, err
	}

	frame, err := sip.Encode(cmd, params...)
	if err != nil {
		c.metrics.incOperationErrCount()
		return nil, err
	}

	rsp, err := c.queue.submit(command, func() (*sip.Response, error) {
		return c.request(c.Registry(), cmd, frame)
	})
	if err != nil {
		c.metrics.incOperationErrCount()
		return nil, err
	}

	return rsp, nil
}

// request sends frame, retrying timeouts and connection errors.
func (c *Client) request(reg *sip.Registry, cmd sip.CommandSpec, frame []byte) (*sip.Response, error) {
	maxAttempts := c.cfg.maxAttempts()
	l := c.GetLogger()

	for attempt := 1; ; attempt++ {
		l.Debug("send request", "command", cmd.Name, "attempt", attempt, "max_attempts", maxAttempts)

		rsp, err := c.attempt(l, reg, cmd, frame)
		if err == nil {
			if l.Level() == logger.DebugLevel {
				l.Debug("response received", "command", cmd.Name, "type", rsp.Type, "fields", rsp.Fields)
			}

			return rsp, nil
		}

		if !sip.IsRetryable(err) || attempt >= maxAttempts {
			return nil, err
		}

		delay := c.cfg.RetryDelay()
		c.metrics.incRetryCount()
		l.Warn("request failed, retrying", "command", cmd.Name, "attempt", attempt, "delay", delay, "error", err)
		pool.Sleep(delay)
	}
}

// attempt performs a single HTTP exchange with the controller.
func (c *Client) attempt(l logger.Logger, reg *sip.Registry, cmd sip.CommandSpec, frame []byte) (*sip.Response, error) {
	c.metrics.incAttemptCount()
	settings := c.cfg.attemptSettings()

	body, err := sip.Encrypt(settings.password, frame)
	if err != nil {
		return nil, err
	}

	// the deadline covers both the round trip and reading the reply
	ctx, cancel := context.WithTimeout(context.Background(), settings.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("User-Agent", settings.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Content-Type", "application/octet-stream")

	res, err := settings.client.Do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxReplySize))
		return nil, &sip.HTTPStatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	data, err := readReply(res)
	if err != nil {
		return nil, c.classify(err)
	}

	plaintext, err := sip.Decrypt(settings.password, data)
	if err != nil {
		l.Error("failed to decrypt reply", "command", cmd.Name, "error", err)
		return nil, err
	}

	rsp, err := reg.Decode(plaintext)
	if err != nil {
		if errors.Is(err, sip.ErrDecryptOrParse) {
			l.Error("failed to parse reply", "command", cmd.Name, "error", err)
		}
		return nil, err
	}

	if rsp.Type == sip.NotAcknowledgeResponse {
		c.metrics.incNAKCount()
		return nil, nakError(rsp)
	}

	if rsp.Opcode != cmd.Response {
		return nil, fmt.Errorf("%w: %s expects %02X, got %s", ErrUnexpectedResponse, cmd.Name, cmd.Response, rsp.Type)
	}

	return rsp, nil
}

// classify maps a transport error to sip.ErrTransportTimeout or sip.ErrTransportConnection when it
// is retryable.
func (c *Client) classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		c.metrics.incTimeoutCount()
		return fmt.Errorf("%w: %w", sip.ErrTransportTimeout, err)

	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("%w: %w", sip.ErrTransportConnection, err)

	default:
		return fmt.Errorf("send request: %w", err)
	}
}

func readReply(res *http.Response) ([]byte, error) {
	var r io.Reader = res.Body

	switch strings.ToLower(res.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz

	case "deflate":
		zr, err := zlib.NewReader(res.Body)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}

	return io.ReadAll(io.LimitReader(r, maxReplySize))
}

func nakError(rsp *sip.Response) error {
	echo, _ := rsp.Uint("commandEcho")
	code, _ := rsp.Uint(sip.FieldNAKCode)

	return &sip.NAKError{CommandEcho: byte(echo), Code: uint8(code)} //nolint:gosec
}
