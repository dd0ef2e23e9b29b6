package rainbird

import (
	"errors"

	"github.com/puzpuzpuz/xsync/v3"
)

// ClientPool holds one Client per controller host.
//
// A controller handles a single request at a time, so configurations naming the same host share
// the client created for the first of them.
type ClientPool struct {
	clients *xsync.MapOf[string, *Client]
}

// NewClientPool creates an empty pool.
func NewClientPool() *ClientPool {
	return &ClientPool{clients: xsync.NewMapOf[string, *Client]()}
}

// Acquire returns the client of cfg's host, creating it from cfg if the pool has none.
// The returned flag reports whether the client already existed.
func (p *ClientPool) Acquire(cfg *ClientConfig) (*Client, bool, error) {
	if cfg == nil {
		return nil, false, ErrConfigNil
	}

	var (
		err     error
		existed bool
	)
	client, _ := p.clients.Compute(cfg.Host(), func(old *Client, loaded bool) (*Client, bool) {
		if loaded {
			existed = true
			return old, false
		}

		var c *Client
		c, err = NewClient(cfg)

		return c, err != nil
	})
	if err != nil {
		return nil, false, err
	}

	return client, existed, nil
}

// Get returns the client of host.
func (p *ClientPool) Get(host string) (*Client, bool) {
	return p.clients.Load(host)
}

// Remove closes and removes the client of host. It reports whether the pool had one.
func (p *ClientPool) Remove(host string) (bool, error) {
	client, ok := p.clients.LoadAndDelete(host)
	if !ok {
		return false, nil
	}

	return true, client.Close()
}

// Range calls f for each client until f returns false.
func (p *ClientPool) Range(f func(host string, client *Client) bool) {
	p.clients.Range(f)
}

// Size returns the number of clients in the pool.
func (p *ClientPool) Size() int {
	return p.clients.Size()
}

// Close closes and removes every client.
func (p *ClientPool) Close() error {
	var errs []error
	p.clients.Range(func(host string, _ *Client) bool {
		if _, err := p.Remove(host); err != nil {
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}
