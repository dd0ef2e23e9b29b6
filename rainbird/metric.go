package rainbird

import (
	"sync/atomic"
)

// ClientMetrics contains atomic metrics for a client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ClientMetrics struct {
	// OperationCount indicates the number of operations submitted.
	OperationCount atomic.Uint64
	// OperationErrCount indicates the number of operations that failed.
	OperationErrCount atomic.Uint64

	// AttemptCount indicates the number of HTTP requests sent to the controller.
	AttemptCount atomic.Uint64
	// RetryCount indicates the number of attempts that were retried.
	RetryCount atomic.Uint64
	// TimeoutCount indicates the number of attempts that timed out.
	TimeoutCount atomic.Uint64
	// NAKCount indicates the number of commands rejected by the controller.
	NAKCount atomic.Uint64

	// QueueGauge indicates the number of operations waiting for the controller, including the
	// running one.
	QueueGauge atomic.Int64
}

func (m *ClientMetrics) incOperationCount() {
	m.OperationCount.Add(1)
}

func (m *ClientMetrics) incOperationErrCount() {
	m.OperationErrCount.Add(1)
}

func (m *ClientMetrics) incAttemptCount() {
	m.AttemptCount.Add(1)
}

func (m *ClientMetrics) incRetryCount() {
	m.RetryCount.Add(1)
}

func (m *ClientMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

func (m *ClientMetrics) incNAKCount() {
	m.NAKCount.Add(1)
}

func (m *ClientMetrics) incQueueGauge() {
	m.QueueGauge.Add(1)
}

func (m *ClientMetrics) decQueueGauge() {
	m.QueueGauge.Add(-1)
}
