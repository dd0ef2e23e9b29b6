package rainbird

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientPool(t *testing.T) {
	require := require.New(t)

	p := NewClientPool()

	cfg1, err := NewClientConfig("192.168.1.20", "secret")
	require.NoError(err)
	cfg2, err := NewClientConfig("192.168.1.20", "other")
	require.NoError(err)
	cfg3, err := NewClientConfig("192.168.1.21", "secret")
	require.NoError(err)

	c1, loaded, err := p.Acquire(cfg1)
	require.NoError(err)
	require.False(loaded)
	require.Same(cfg1, c1.Config())

	// same controller, same client
	c2, loaded, err := p.Acquire(cfg2)
	require.NoError(err)
	require.True(loaded)
	require.Same(c1, c2)

	c3, loaded, err := p.Acquire(cfg3)
	require.NoError(err)
	require.False(loaded)
	require.NotSame(c1, c3)
	require.Equal(2, p.Size())

	got, ok := p.Get("192.168.1.21")
	require.True(ok)
	require.Same(c3, got)

	hosts := map[string]bool{}
	p.Range(func(host string, _ *Client) bool {
		hosts[host] = true
		return true
	})
	require.Equal(map[string]bool{"192.168.1.20": true, "192.168.1.21": true}, hosts)

	removed, err := p.Remove("192.168.1.21")
	require.NoError(err)
	require.True(removed)
	_, err = c3.StopIrrigation()
	require.ErrorIs(err, ErrClientClosed)

	removed, err = p.Remove("192.168.1.21")
	require.NoError(err)
	require.False(removed)

	_, _, err = p.Acquire(nil)
	require.ErrorIs(err, ErrConfigNil)

	require.NoError(p.Close())
	require.Zero(p.Size())
}

func TestClientPool_ConcurrentAcquire(t *testing.T) {
	require := require.New(t)

	p := NewClientPool()
	defer p.Close()

	var wg sync.WaitGroup
	clients := make([]*Client, 16)
	for i := range clients {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := NewClientConfig("lnk2.local", "secret")
			if err != nil {
				return
			}
			clients[i], _, _ = p.Acquire(cfg)
		}()
	}
	wg.Wait()

	for _, c := range clients {
		require.NotNil(c)
		require.Same(clients[0], c)
	}
	require.Equal(1, p.Size())
}
