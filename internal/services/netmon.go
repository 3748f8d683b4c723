package services

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// Flusher triggers an offline queue flush.
type Flusher interface {
	Flush(ctx context.Context)
}

// NetworkMonitor polls connectivity and flushes the offline queue when the
// connection comes back. The settle delay avoids flushing into a connection
// that is still flapping.
type NetworkMonitor struct {
	prober   Prober
	flusher  Flusher
	interval time.Duration
	settle   time.Duration
}

// NewNetworkMonitor creates a monitor polling every interval. Non-positive
// values fall back to 15s interval and 2s settle delay.
func NewNetworkMonitor(prober Prober, flusher Flusher, interval, settle time.Duration) *NetworkMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if settle <= 0 {
		settle = 2 * time.Second
	}
	return &NetworkMonitor{prober: prober, flusher: flusher, interval: interval, settle: settle}
}

// Run blocks until ctx is done.
func (m *NetworkMonitor) Run(ctx context.Context) {
	online := true
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now, err := m.prober.IsOnline(ctx)
		if err != nil {
			logger.Log.Debugw("connectivity probe error, assuming online", "error", err)
			now = true
		}

		if now && !online {
			logger.Log.Infow("connectivity restored, scheduling queue flush")
			if !sleepCtx(ctx, m.settle) {
				return
			}
			m.flusher.Flush(ctx)
		}
		online = now
	}
}

// DialProber checks reachability by opening a TCP connection to the ledger
// host.
type DialProber struct {
	addr    string
	timeout time.Duration
}

// NewDialProber creates a prober for the host of baseURL. A non-positive
// timeout falls back to 3s.
func NewDialProber(baseURL string, timeout time.Duration) (*DialProber, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	addr := u.Host
	if u.Port() == "" {
		port := "443"
		if u.Scheme == "http" {
			port = "80"
		}
		addr = net.JoinHostPort(u.Hostname(), port)
	}

	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &DialProber{addr: addr, timeout: timeout}, nil
}

// IsOnline reports whether the ledger host accepts TCP connections. A failed
// dial is an offline answer, not an error.
func (p *DialProber) IsOnline(ctx context.Context) (bool, error) {
	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false, nil
	}
	conn.Close()
	return true, nil
}
