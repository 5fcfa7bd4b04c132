// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/binary"
	"io"

	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Record format versions. A version byte leads every record so the format
// can evolve without a migration flag day.
const (
	accountVersion = 1
	ledgerVersion  = 1
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) uint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	w.buf.Write(b[:n])
}

func (w *writer) address(a address.Address) {
	w.buf.Write(a[:])
}

func (w *writer) bytes(b []byte) {
	w.uint(uint64(len(b)))
	w.buf.Write(b)
}

type reader struct {
	buf *bytes.Reader
	err error
}

func newReader(data []byte) *reader {
	return &reader{buf: bytes.NewReader(data)}
}

func (r *reader) uint() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(r.buf)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *reader) address() address.Address {
	var a address.Address
	if r.err != nil {
		return a
	}
	if _, err := io.ReadFull(r.buf, a[:]); err != nil {
		r.err = err
	}
	return a
}

func (r *reader) bytes() []byte {
	n := r.uint()
	if r.err != nil {
		return nil
	}
	if n > uint64(r.buf.Len()) {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.buf, b); err != nil {
		r.err = err
	}
	return b
}

func (r *reader) done(what string) error {
	if r.err != nil {
		return errors.EncodingError.WithFormat("decode %s: %w", what, r.err)
	}
	if r.buf.Len() != 0 {
		return errors.EncodingError.WithFormat("decode %s: %d bytes left over", what, r.buf.Len())
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *AccrualAccount) MarshalBinary() ([]byte, error) {
	w := new(writer)
	w.uint(accountVersion)
	w.address(a.Address)
	w.uint(a.Balance)
	w.uint(a.AccruedSince)
	w.uint(a.IncomingSince)
	w.uint(a.IncomingRate)
	w.uint(a.OutgoingRate)
	w.uint(uint64(len(a.Streams)))
	for _, e := range a.Streams {
		w.address(e.Destination)
		w.uint(e.Rate)
	}
	return w.buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *AccrualAccount) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	if v := r.uint(); r.err == nil && v != accountVersion {
		return errors.EncodingError.WithFormat("decode account: unsupported version %d", v)
	}
	a.Address = r.address()
	a.Balance = r.uint()
	a.AccruedSince = r.uint()
	a.IncomingSince = r.uint()
	a.IncomingRate = r.uint()
	a.OutgoingRate = r.uint()
	n := r.uint()
	if r.err == nil && n > MaxStreams {
		return errors.EncodingError.WithFormat("decode account: %d streams exceeds limit", n)
	}
	a.Streams = nil
	for i := uint64(0); i < n && r.err == nil; i++ {
		var e StreamEdge
		e.Destination = r.address()
		e.Rate = r.uint()
		a.Streams = append(a.Streams, e)
	}
	return r.done("account")
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *SystemLedger) MarshalBinary() ([]byte, error) {
	w := new(writer)
	w.uint(ledgerVersion)
	w.uint(l.AccrualRate)
	w.uint(l.Participants)
	w.uint(l.SettledSupply)
	w.uint(l.ReconciledAt)
	w.address(l.Operator)
	w.bytes([]byte(l.Registry))
	return w.buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *SystemLedger) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	if v := r.uint(); r.err == nil && v != ledgerVersion {
		return errors.EncodingError.WithFormat("decode ledger: unsupported version %d", v)
	}
	l.AccrualRate = r.uint()
	l.Participants = r.uint()
	l.SettledSupply = r.uint()
	l.ReconciledAt = r.uint()
	l.Operator = r.address()
	l.Registry = string(r.bytes())
	return r.done("ledger")
}
