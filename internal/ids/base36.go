// Package ids provides the process-wide base-36 identifier counters shared by
// the data service (execution IDs) and the trader pool (order IDs).
package ids

import (
	"errors"
	"sync"
)

// Width is the fixed identifier length.
const Width = 12

// ErrCounterOverflow means every digit has wrapped past 'Z'. Callers treat
// this as fatal; the counter space is exhausted.
var ErrCounterOverflow = errors.New("ids: base-36 counter overflow")

// Counter hands out strictly increasing 12-character base-36 identifiers
// (digits 0-9A-Z). The zero identifier "000000000000" is never issued; the
// first Next call returns "000000000001". Safe for concurrent use.
type Counter struct {
	mu     sync.Mutex
	digits [Width]byte
}

func NewCounter() *Counter {
	c := &Counter{}
	for i := range c.digits {
		c.digits[i] = '0'
	}
	return c
}

// Next increments the counter and returns the new identifier.
func (c *Counter) Next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Least-significant digit first, carrying on 'Z'.
	for i := Width - 1; i >= 0; i-- {
		d := c.digits[i]
		switch {
		case d >= '0' && d <= '8', d >= 'A' && d <= 'Y':
			c.digits[i] = d + 1
			return string(c.digits[:]), nil
		case d == '9':
			c.digits[i] = 'A'
			return string(c.digits[:]), nil
		case d == 'Z':
			c.digits[i] = '0'
		default:
			return "", errors.New("ids: corrupt counter digit")
		}
	}

	return "", ErrCounterOverflow
}

// Current returns the last issued identifier without advancing the counter.
func (c *Counter) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.digits[:])
}
