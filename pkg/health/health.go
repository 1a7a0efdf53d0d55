// Package health provides Kubernetes-style liveness and readiness probes.
//
// Checks are evaluated periodically by a single background scheduler. A check
// flips to unhealthy only after three consecutive failures, so a single
// transient error does not take the service out of rotation.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// failureThreshold is the number of consecutive failures before a check is
// reported unhealthy.
const failureThreshold = 3

// CheckFunc probes one component. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	fails   int
	lastErr error
}

// probeSet groups the checks behind one endpoint (liveness or readiness).
type probeSet struct {
	mu     sync.Mutex
	checks []*check
}

func (ps *probeSet) add(name string, timeout time.Duration, fn CheckFunc) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.checks = append(ps.checks, &check{name: name, timeout: timeout, fn: fn})
}

// runAll evaluates every check once, updating failure counters.
func (ps *probeSet) runAll(ctx context.Context) {
	ps.mu.Lock()
	checks := make([]*check, len(ps.checks))
	copy(checks, ps.checks)
	ps.mu.Unlock()

	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()

		ps.mu.Lock()
		if err != nil {
			c.fails++
			c.lastErr = err
		} else {
			c.fails = 0
			c.lastErr = nil
		}
		ps.mu.Unlock()
	}
}

// failures returns name → error message for every check past its threshold.
func (ps *probeSet) failures() map[string]string {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	out := make(map[string]string)
	for _, c := range ps.checks {
		if c.fails < failureThreshold {
			continue
		}
		if c.lastErr != nil {
			out[c.name] = c.lastErr.Error()
		} else {
			out[c.name] = "check is unhealthy"
		}
	}
	return out
}

func (ps *probeSet) healthy() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for _, c := range ps.checks {
		if c.fails >= failureThreshold {
			return false
		}
	}
	return true
}

// Health manages the liveness and readiness state of a service.
type Health struct {
	liveness  probeSet
	readiness probeSet

	mu     sync.Mutex
	ready  bool
	cancel context.CancelFunc
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) once initialization has finished.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check behind /livez: is the process itself
// still functioning (goroutine count, deadlock detection).
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.liveness.add(name, timeout, fn)
}

// AddReadinessCheck registers a check behind /readyz: can the service take
// traffic (database connectivity, dependency availability).
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.readiness.add(name, timeout, fn)
}

// Start runs all registered checks once immediately and then on every tick of
// the given interval, until the context is cancelled or Stop is called.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		h.liveness.runAll(ctx)
		h.readiness.runAll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.liveness.runAll(ctx)
				h.readiness.runAll(ctx)
			}
		}
	}()
}

// SetReady flips the manual readiness gate. Graceful shutdown sets it to
// false first so load balancers stop routing new traffic.
func (h *Health) SetReady(ready bool) {
	h.mu.Lock()
	h.ready = ready
	h.mu.Unlock()
}

// IsReady reports whether the service was marked ready and every readiness
// check is passing.
func (h *Health) IsReady() bool {
	h.mu.Lock()
	ready := h.ready
	h.mu.Unlock()

	return ready && h.readiness.healthy()
}

// Stop cancels the background scheduler. Safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 {"status":"ok"} while all liveness checks
// pass, 503 with the failing checks otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, h.liveness.failures())
}

// ReadyEndpoint serves /readyz: 200 only when the service is marked ready and
// all readiness checks pass.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	failures := h.readiness.failures()

	h.mu.Lock()
	ready := h.ready
	h.mu.Unlock()
	if !ready {
		failures["_readiness"] = "service is not ready"
	}

	writeStatus(w, failures)
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	status := http.StatusOK
	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
