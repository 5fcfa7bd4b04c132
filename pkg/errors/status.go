// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "fmt"

// Status is a request status code. Codes in [200, 300) indicate success,
// codes in [400, 500) indicate an error caused by the caller, and codes 500
// and up indicate an error caused by the ledger itself.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200

	// BadRequest means the request was invalid.
	BadRequest Status = 400

	// InsufficientBalance means the account's settled balance cannot cover
	// the requested debit.
	InsufficientBalance Status = 402

	// NotAttested means the attestation registry does not report the account
	// as a verified participant.
	NotAttested Status = 403

	// NotFound means a record could not be located.
	NotFound Status = 404

	// NotAllowed means the requested action is not permitted.
	NotAllowed Status = 405

	// StillAttested means a removal was reported for an account the registry
	// still reports as verified.
	StillAttested Status = 406

	// AlreadyAccruing means the account already has active primary accrual.
	AlreadyAccruing Status = 407

	// NotAccruing means the account has no active primary accrual.
	NotAccruing Status = 408

	// DuplicateStream means the account already has a stream to the
	// destination.
	DuplicateStream Status = 409

	// StreamNotActive means the account has no stream to the destination.
	StreamNotActive Status = 410

	// StreamLimit means the account already has the maximum number of
	// outgoing streams.
	StreamLimit Status = 411

	// RateCapExceeded means the account's total outgoing stream rate would
	// exceed the ledger accrual rate.
	RateCapExceeded Status = 412

	// InsufficientAllowance means the spender's allowance cannot cover the
	// requested transfer.
	InsufficientAllowance Status = 413

	// InternalError means an internal error occurred.
	InternalError Status = 500

	// UnknownError means an unknown error occurred.
	UnknownError Status = 501

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 502

	// FatalError means a numeric invariant was breached. The operation must
	// be aborted with no partial effect.
	FatalError Status = 503
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "badRequest"
	case InsufficientBalance:
		return "insufficientBalance"
	case NotAttested:
		return "notAttested"
	case NotFound:
		return "notFound"
	case NotAllowed:
		return "notAllowed"
	case StillAttested:
		return "stillAttested"
	case AlreadyAccruing:
		return "alreadyAccruing"
	case NotAccruing:
		return "notAccruing"
	case DuplicateStream:
		return "duplicateStream"
	case StreamNotActive:
		return "streamNotActive"
	case StreamLimit:
		return "streamLimit"
	case RateCapExceeded:
		return "rateCapExceeded"
	case InsufficientAllowance:
		return "insufficientAllowance"
	case InternalError:
		return "internalError"
	case UnknownError:
		return "unknownError"
	case EncodingError:
		return "encodingError"
	case FatalError:
		return "fatalError"
	default:
		return fmt.Sprintf("Status:%d", uint64(s))
	}
}
