// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package publish defines the sink invoked after a burn-and-publish
// operation. The burn settles and decrements supply first; the publish is
// attempted afterwards and its failure does not roll back the burn.
package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"gitlab.com/driptide/driptide/pkg/types/address"
)

// Publisher receives content published alongside a burn.
type Publisher interface {
	Publish(ctx context.Context, origin address.Address, content []byte) error
}

// Log is a publisher that records content digests to the log.
type Log struct {
	logger *slog.Logger
}

var _ Publisher = (*Log)(nil)

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger.With("module", "publish")}
}

func (l *Log) Publish(_ context.Context, origin address.Address, content []byte) error {
	digest := sha256.Sum256(content)
	l.logger.Info("Published content",
		"origin", origin,
		"size", len(content),
		"digest", hex.EncodeToString(digest[:]))
	return nil
}
