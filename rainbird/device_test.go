package rainbird

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arloliu/go-rainbird/logger"
	"github.com/arloliu/go-rainbird/sip"
	"github.com/stretchr/testify/require"
)

const testPassword = "secret"

// device simulates the WiFi module of a controller.
//
// reply maps the hex command data of a request to the plaintext JSON reply, an empty reply
// makes the device answer with an unsupported-command NAK.
type device struct {
	server *httptest.Server

	mu       sync.Mutex
	reply    func(data string) string
	status   int
	stall    time.Duration
	encoding string
	resets   int
	requests []sip.Frame
	headers  []http.Header

	hits atomic.Int64
}

func newDevice(t *testing.T, reply func(data string) string) *device {
	t.Helper()

	d := &device{reply: reply, status: http.StatusOK}
	d.server = httptest.NewServer(http.HandlerFunc(d.handle))
	t.Cleanup(d.server.Close)

	return d
}

func (d *device) host() string {
	return d.server.Listener.Addr().String()
}

func (d *device) setStatus(status int) {
	d.mu.Lock()
	d.status = status
	d.mu.Unlock()
}

func (d *device) setStall(stall time.Duration) {
	d.mu.Lock()
	d.stall = stall
	d.mu.Unlock()
}

// setEncoding sets the Content-Encoding of replies, "gzip" or "deflate".
func (d *device) setEncoding(encoding string) {
	d.mu.Lock()
	d.encoding = encoding
	d.mu.Unlock()
}

// setResets makes the device reset the connection of the next n requests.
func (d *device) setResets(n int) {
	d.mu.Lock()
	d.resets = n
	d.mu.Unlock()
}

func (d *device) frames() []sip.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]sip.Frame(nil), d.requests...)
}

func (d *device) handle(w http.ResponseWriter, r *http.Request) {
	d.hits.Add(1)

	d.mu.Lock()
	status, stall, reply, encoding := d.status, d.stall, d.reply, d.encoding
	reset := d.resets > 0
	if reset {
		d.resets--
	}
	d.headers = append(d.headers, r.Header.Clone())
	d.mu.Unlock()

	if reset {
		resetConn(w)
		return
	}

	if stall > 0 {
		select {
		case <-time.After(stall):
		case <-r.Context().Done():
			return
		}
	}

	if r.Method != http.MethodPost || r.URL.Path != "/stick" {
		http.NotFound(w, r)
		return
	}

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plaintext, err := sip.Decrypt(testPassword, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var frame sip.Frame
	if err := json.Unmarshal(plaintext, &frame); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d.mu.Lock()
	d.requests = append(d.requests, frame)
	d.mu.Unlock()

	rsp := reply(frame.Params.Data)
	if rsp == "" {
		rsp = result("00" + frame.Params.Data[:2] + "01")
	}

	msg, err := sip.Encrypt(testPassword, []byte(rsp))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if encoding != "" {
		var buf bytes.Buffer
		var zw io.WriteCloser
		if encoding == "gzip" {
			zw = gzip.NewWriter(&buf)
		} else {
			zw = zlib.NewWriter(&buf)
		}
		_, _ = zw.Write(msg)
		_ = zw.Close()
		msg = buf.Bytes()
		w.Header().Set("Content-Encoding", encoding)
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(msg)
}

// resetConn aborts the connection of w with a TCP reset.
func resetConn(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		return
	}

	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetLinger(0)
	}
	_ = conn.Close()
}

// result returns the plaintext reply carrying the hex response data.
func result(data string) string {
	b, _ := json.Marshal(map[string]any{
		"result": map[string]any{"length": len(data) / 2, "data": data},
	})

	return string(b)
}

// ack returns the acknowledge reply of the command in data.
func ack(data string) string {
	return result("01" + strings.ToUpper(data[:2]))
}

// newTestClient creates a client of d with a fast retry policy.
func newTestClient(t *testing.T, d *device, opts ...ClientOption) *Client {
	t.Helper()

	opts = append([]ClientOption{
		WithTimeout(time.Second),
		WithRetryDelay(0),
		WithLogger(logger.NewSlogWithWriter(io.Discard, logger.InfoLevel, false)),
	}, opts...)

	cfg, err := NewClientConfig(d.host(), testPassword, opts...)
	require.NoError(t, err)

	client, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}
