package rainbird

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/go-rainbird/logger"
	"github.com/arloliu/go-rainbird/sip"
)

const (
	// DefaultTimeout is the default per-attempt request timeout.
	DefaultTimeout = 3 * time.Second
	// DefaultRetryCount is the default maximum number of attempts of an operation.
	DefaultRetryCount = 2
	// DefaultRetryDelay is the default delay between two attempts.
	DefaultRetryDelay = time.Second
	// DefaultUserAgent is the User-Agent header sent to the controller.
	DefaultUserAgent = "RainBird/2.0"
)

// ClientConfig represents the configuration of a Client.
//
// Options applied after the client is created must go through Client.UpdateConfigOptions, which
// waits for in-flight operations to complete.
type ClientConfig struct {
	mu sync.RWMutex

	// host is the address of the controller's WiFi module, an IP address or host name with an
	// optional port.
	host string

	// password is the shared secret of the controller.
	password string

	// timeout bounds each request attempt. It should be between 100 milliseconds and 60 seconds.
	// Defaults to 3 seconds.
	timeout time.Duration

	// retryCount is the maximum number of attempts of an operation, 0 and 1 both mean a single
	// attempt. It should be between 0 and 10.
	// Defaults to 2.
	retryCount int

	// retryDelay is the delay between two attempts. It should be between 0 and 60 seconds.
	// Defaults to 1 second.
	retryDelay time.Duration

	// userAgent is sent as the User-Agent header.
	// Defaults to "RainBird/2.0".
	userAgent string

	// debug enables debug level logging of requests and responses.
	debug bool

	// logger provides a logger instance for logging client events and errors.
	logger logger.Logger

	// httpClient sends the requests, the default has no timeout of its own.
	httpClient *http.Client

	// registry resolves commands and responses.
	// Defaults to sip.DefaultRegistry().
	registry *sip.Registry
}

// NewClientConfig creates a new client configuration with the given controller host, password,
// and optional functional options.
//
// It returns a pointer to the initialized ClientConfig and an error if any option is invalid.
func NewClientConfig(host string, password string, opts ...ClientOption) (*ClientConfig, error) {
	cfg := &ClientConfig{
		timeout:    DefaultTimeout,
		retryCount: DefaultRetryCount,
		retryDelay: DefaultRetryDelay,
		userAgent:  DefaultUserAgent,
		logger:     logger.GetLogger(),
		httpClient: &http.Client{},
		registry:   sip.DefaultRegistry(),
	}

	if err := withHost(host).apply(cfg); err != nil {
		return cfg, err
	}

	if err := withPassword(password).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// Host returns the controller address.
func (cfg *ClientConfig) Host() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.host
}

// Timeout returns the per-attempt request timeout.
func (cfg *ClientConfig) Timeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.timeout
}

// RetryCount returns the configured retry count.
func (cfg *ClientConfig) RetryCount() int {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.retryCount
}

// RetryDelay returns the delay between two attempts.
func (cfg *ClientConfig) RetryDelay() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.retryDelay
}

// maxAttempts returns the number of attempts of an operation, at least 1.
func (cfg *ClientConfig) maxAttempts() int {
	return max(1, cfg.RetryCount())
}

// clone returns a copy of cfg that options can be applied to without affecting cfg.
func (cfg *ClientConfig) clone() *ClientConfig {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return &ClientConfig{
		host:       cfg.host,
		password:   cfg.password,
		timeout:    cfg.timeout,
		retryCount: cfg.retryCount,
		retryDelay: cfg.retryDelay,
		userAgent:  cfg.userAgent,
		debug:      cfg.debug,
		logger:     cfg.logger,
		httpClient: cfg.httpClient,
		registry:   cfg.registry,
	}
}

// update replaces the settings of cfg with those of src.
func (cfg *ClientConfig) update(src *ClientConfig) {
	src.mu.RLock()
	defer src.mu.RUnlock()
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	cfg.host = src.host
	cfg.password = src.password
	cfg.timeout = src.timeout
	cfg.retryCount = src.retryCount
	cfg.retryDelay = src.retryDelay
	cfg.userAgent = src.userAgent
	cfg.debug = src.debug
	cfg.logger = src.logger
	cfg.httpClient = src.httpClient
	cfg.registry = src.registry
}

// attemptSettings is a consistent snapshot of the settings used by one request attempt.
type attemptSettings struct {
	url       string
	password  string
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

func (cfg *ClientConfig) attemptSettings() attemptSettings {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return attemptSettings{
		url:       "http://" + cfg.host + "/stick",
		password:  cfg.password,
		userAgent: cfg.userAgent,
		timeout:   cfg.timeout,
		client:    cfg.httpClient,
	}
}

// ClientOption represents a functional option for configuring a ClientConfig.
type ClientOption interface {
	apply(*ClientConfig) error
}

type clientOptFunc struct {
	name      string
	applyFunc func(*ClientConfig) error
}

func (c *clientOptFunc) apply(cfg *ClientConfig) error {
	if cfg == nil {
		return ErrConfigNil
	}

	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	return c.applyFunc(cfg)
}

func newClientOptFunc(name string, f func(*ClientConfig) error) *clientOptFunc {
	return &clientOptFunc{name: name, applyFunc: f}
}

// withHost sets the controller address. It accepts an IP address or a host name, optionally
// followed by a port, e.g. "192.168.1.20" or "lnk2.local:8080".
func withHost(host string) ClientOption {
	return newClientOptFunc("withHost", func(cfg *ClientConfig) error {
		addr := strings.TrimSpace(host)
		if addr == "" {
			return errors.New("host is empty")
		}

		name := addr
		hasPort := false
		if h, port, err := net.SplitHostPort(addr); err == nil {
			if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
				return errors.New("port is out of range [1, 65535]")
			}
			name = h
			hasPort = true
		}

		ip := net.ParseIP(name)
		if ip == nil && !isHostname(name) {
			return errors.New("invalid host")
		}

		// bare IPv6 addresses need brackets in URLs
		if ip != nil && ip.To4() == nil && !hasPort {
			addr = "[" + addr + "]"
		}
		cfg.host = addr

		return nil
	})
}

// withPassword sets the shared secret of the controller.
func withPassword(password string) ClientOption {
	return newClientOptFunc("withPassword", func(cfg *ClientConfig) error {
		if password == "" {
			return errors.New("password is empty")
		}
		cfg.password = password

		return nil
	})
}

// WithTimeout sets the timeout of each request attempt.
// It returns an error if the timeout is out of range [100ms, 60s].
//
// The default timeout is 3 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return newClientOptFunc("WithTimeout", func(cfg *ClientConfig) error {
		if timeout < 100*time.Millisecond || timeout > 60*time.Second {
			return errors.New("timeout out of range [100ms, 60s]")
		}
		cfg.timeout = timeout

		return nil
	})
}

// WithRetryCount sets the maximum number of attempts of an operation. 0 and 1 both mean a
// single attempt.
// It returns an error if count is out of range [0, 10].
//
// The default retry count is 2.
func WithRetryCount(count int) ClientOption {
	return newClientOptFunc("WithRetryCount", func(cfg *ClientConfig) error {
		if count < 0 || count > 10 {
			return errors.New("retry count out of range [0, 10]")
		}
		cfg.retryCount = count

		return nil
	})
}

// WithRetryDelay sets the delay between two attempts.
// It returns an error if delay is out of range [0, 60s].
//
// The default retry delay is 1 second.
func WithRetryDelay(delay time.Duration) ClientOption {
	return newClientOptFunc("WithRetryDelay", func(cfg *ClientConfig) error {
		if delay < 0 || delay > 60*time.Second {
			return errors.New("retry delay out of range [0, 60s]")
		}
		cfg.retryDelay = delay

		return nil
	})
}

// WithUserAgent sets the User-Agent header sent to the controller.
func WithUserAgent(userAgent string) ClientOption {
	return newClientOptFunc("WithUserAgent", func(cfg *ClientConfig) error {
		if userAgent == "" {
			return errors.New("user agent is empty")
		}
		cfg.userAgent = userAgent

		return nil
	})
}

// WithDebug enables or disables debug logging of requests and responses.
//
// The client logs through a child of the configured logger whose level is set independently, so
// the configured logger keeps its own level. See logger.WithLevel.
func WithDebug(enable bool) ClientOption {
	return newClientOptFunc("WithDebug", func(cfg *ClientConfig) error {
		cfg.debug = enable
		return nil
	})
}

// WithLogger sets the logger of the client. A nil logger selects the default logger.
func WithLogger(l logger.Logger) ClientOption {
	return newClientOptFunc("WithLogger", func(cfg *ClientConfig) error {
		cfg.logger = logger.OrDefault(l)
		return nil
	})
}

// WithHTTPClient sets the HTTP client used to reach the controller.
//
// The request timeout is enforced per attempt regardless of the client's own timeout.
func WithHTTPClient(client *http.Client) ClientOption {
	return newClientOptFunc("WithHTTPClient", func(cfg *ClientConfig) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = client

		return nil
	})
}

// WithRegistry sets the command and response registry.
func WithRegistry(reg *sip.Registry) ClientOption {
	return newClientOptFunc("WithRegistry", func(cfg *ClientConfig) error {
		if reg == nil {
			return errors.New("registry is nil")
		}
		cfg.registry = reg

		return nil
	})
}

func isHostname(name string) bool {
	name = strings.TrimSuffix(name, ".")
	if name == "" || len(name) > 253 {
		return false
	}

	for _, label := range strings.Split(name, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}

	return true
}
