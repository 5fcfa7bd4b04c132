// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// OverflowTracker tracks whether a chain of unsigned operations overflowed.
// Callers check Overflowed once after a sequence of operations instead of
// checking every intermediate result.
type OverflowTracker struct {
	Overflowed bool
}

// Add returns a + b, recording overflow.
func (t *OverflowTracker) Add(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		t.Overflowed = true
	}
	return sum
}

// Sub returns a - b, recording underflow. Unsigned subtraction that would go
// negative is an invariant breach, never wraparound.
func (t *OverflowTracker) Sub(a, b uint64) uint64 {
	if b > a {
		t.Overflowed = true
		return 0
	}
	return a - b
}

// Mul returns a * b, recording overflow.
func (t *OverflowTracker) Mul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/a != b {
		t.Overflowed = true
	}
	return product
}

// PendingAccrual returns the value accrued at the given rate since the given
// timestamp: rate * (now - since). A zero timestamp means the timer is idle
// and nothing is pending. The clock is monotonic, so now < since is an
// invariant breach and is recorded on the tracker.
func PendingAccrual(t *OverflowTracker, rate, since, now uint64) uint64 {
	if since == 0 {
		return 0
	}
	if now < since {
		t.Overflowed = true
		return 0
	}
	return t.Mul(rate, now-since)
}
