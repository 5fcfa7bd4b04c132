// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mOperationsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driptide",
		Subsystem: "executor",
		Name:      "operations_executed",
		Help:      "Number of operations executed, by type",
	}, []string{"type"})
	mOperationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driptide",
		Subsystem: "executor",
		Name:      "operations_failed",
		Help:      "Number of operations rejected or failed, by type",
	}, []string{"type"})
	mParticipants = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "driptide",
		Subsystem: "ledger",
		Name:      "participants",
		Help:      "Number of accounts with active primary accrual",
	})
	mSettledSupply = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "driptide",
		Subsystem: "ledger",
		Name:      "settled_supply",
		Help:      "Settled supply as of the last reconciliation",
	})
)
