// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

const (
	// MaxStreams is the maximum number of outgoing streams per account. The
	// bound exists so that closing every stream of an account, as removal
	// reporting must, is a fixed amount of work.
	MaxStreams = 5

	// PercentBasis is the denominator for stream percentages. A stream of
	// percent p carries p/PercentBasis of the ledger accrual rate.
	PercentBasis = 100

	// DefaultAccrualRate is the per-second accrual rate granted to each
	// verified participant unless the ledger is initialized with another.
	DefaultAccrualRate = 100
)
