package rainbird

import (
	"fmt"
	"sync"

	"github.com/arloliu/go-rainbird/internal/queue"
	"github.com/arloliu/go-rainbird/logger"
	"github.com/arloliu/go-rainbird/sip"
)

// opFunc is an operation run against the controller.
type opFunc func() (*sip.Response, error)

type opResult struct {
	rsp *sip.Response
	err error
}

type operation struct {
	name   string
	fn     opFunc
	result chan opResult
}

// serializer runs operations one at a time in submission order.
//
// A worker goroutine is started when an operation is submitted to an idle serializer, it drains
// the queue and exits once the queue is empty. The queue and the worker flag are the only state
// shared between submitters and they are guarded by mu, as is the logger.
type serializer struct {
	mu      sync.Mutex
	ops     queue.Queue[*operation]
	running bool
	closed  bool
	wg      sync.WaitGroup

	logger  logger.Logger
	metrics *ClientMetrics
}

func newSerializer(l logger.Logger, metrics *ClientMetrics) *serializer {
	return &serializer{
		ops:     queue.NewSliceQueue[*operation](8),
		logger:  l,
		metrics: metrics,
	}
}

// submit enqueues fn and waits for its result.
//
// The result of an operation only goes to its submitter, a failed operation doesn't affect the
// operations queued behind it.
func (s *serializer) submit(name string, fn opFunc) (*sip.Response, error) {
	op := &operation{name: name, fn: fn, result: make(chan opResult, 1)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClientClosed
	}
	s.ops.Enqueue(op)
	s.metrics.incQueueGauge()
	s.logger.Debug("operation queued", "operation", name, "pending", s.ops.Length())
	if !s.running {
		s.running = true
		s.wg.Add(1)
		go s.worker()
	}
	s.mu.Unlock()

	res := <-op.result

	return res.rsp, res.err
}

func (s *serializer) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		op, ok := s.ops.Dequeue()
		if !ok {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		rsp, err := s.run(op)
		if err != nil {
			s.getLogger().Error("queued operation failed", "operation", op.name, "error", err)
		}
		s.metrics.decQueueGauge()
		op.result <- opResult{rsp: rsp, err: err}
	}
}

func (s *serializer) getLogger() logger.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logger
}

func (s *serializer) setLogger(l logger.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// run calls the operation with panic protection.
func (s *serializer) run(op *operation) (rsp *sip.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			rsp, err = nil, fmt.Errorf("panic in operation %s: %v", op.name, r)
		}
	}()

	return op.fn()
}

// close rejects further operations and waits until the queued ones have completed.
func (s *serializer) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}
