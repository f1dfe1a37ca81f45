// Package circuit_breaker guards calls to external collaborators. The breaker
// tracks the outcome of a sliding window of calls, opens once the failure
// share crosses a threshold, and after a cool-down admits probe calls until
// enough of them succeed in a row.
package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

var ErrOpenCB = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(service func() error) error
	Reset()
}

type circuitBreaker struct {
	mu    sync.Mutex
	state Status
	// window holds the outcome of the last len(window) calls, true on failure.
	window []bool
	pos    int
	// failShare opens the breaker once failures/len(window) reaches it.
	failShare float64
	// cooldown is how long the breaker stays open before probing again.
	cooldown time.Duration
	openedAt time.Time
	// recovery is how many consecutive successes close a half-open breaker.
	recovery     int
	successCount int

	now func() time.Time
}

func NewCircuitBreaker(windowSize int, cooldown time.Duration, failShare float64, recovery int) CircuitBreaker {
	return &circuitBreaker{
		state:     Closed,
		window:    make([]bool, windowSize),
		failShare: failShare,
		cooldown:  cooldown,
		recovery:  recovery,
		now:       time.Now,
	}
}

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) <= cb.cooldown {
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.state = HalfOpen
		cb.successCount = 0
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.window)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
		} else {
			cb.successCount++
			if cb.successCount >= cb.recovery {
				cb.reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.window)) >= cb.failShare {
		cb.trip()
	}

	return err
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

// trip and reset assume cb.mu is held.
func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successCount = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.pos = 0
	cb.successCount = 0
	cb.state = Closed
}
