// Package rainbird provides a client for irrigation controllers reachable through a LNK/LNK2 WiFi module.
//
// A Client sends SIP commands to one controller as encrypted frames over HTTP and decodes the replies.
// The controller can't serve overlapping requests, so every Client funnels its operations through a
// single FIFO queue. Operations run one at a time in submission order, a failing operation doesn't
// affect the next one.
//
// Each request attempt is bounded by the configured timeout. Timeouts and reset or refused connections
// are retried after the configured delay, up to the configured retry count. Any other failure is
// returned immediately, a NAK from the controller is returned as a *sip.NAKError.
//
// Example Usage:
//
//	cfg, err := rainbird.NewClientConfig("192.168.1.20", "password",
//		rainbird.WithTimeout(3*time.Second),
//		rainbird.WithRetryCount(2),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	client, err := rainbird.NewClient(cfg)
//	if err != nil {
//		// handle error
//	}
//	defer client.Close()
//
//	rsp, err := client.StartZone(5, 10) // run zone 5 for 10 minutes
//
// A ClientPool can be used to share one Client per controller between several callers.
package rainbird
