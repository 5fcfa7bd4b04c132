// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/driptide/driptide/config"
	"gitlab.com/driptide/driptide/internal/api"
	"gitlab.com/driptide/driptide/internal/chain"
	"gitlab.com/driptide/driptide/internal/database"
	"gitlab.com/driptide/driptide/internal/logging"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue/badger"
	"gitlab.com/driptide/driptide/pkg/database/keyvalue/memory"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"golang.org/x/sync/errgroup"
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the ledger daemon",
	Run:   runNode,
	Args:  cobra.NoArgs,
}

func init() {
	cmdMain.AddCommand(cmdRun)
}

func runNode(*cobra.Command, []string) {
	cfg, err := config.Load(flagMain.WorkDir)
	checkf(err, "load configuration")

	logger, err := logging.New(string(cfg.Logging.Format), cfg.Logging.Level)
	checkf(err, "configure logging")

	var store keyvalue.Beginner
	switch cfg.Storage.Type {
	case config.MemoryStorage:
		store = memory.New()
	case config.BadgerStorage:
		store, err = badger.New(config.MakeAbsolute(cfg.RootDir, cfg.Storage.Path))
		checkf(err, "open badger")
	default:
		fatalf("unknown storage type %q", cfg.Storage.Type)
	}
	defer func() { _ = store.Close() }()

	var operator address.Address
	if cfg.Accrual.Operator != "" {
		operator, err = address.Parse(cfg.Accrual.Operator)
		checkf(err, "operator address")
	}

	executor, err := chain.NewExecutor(chain.Options{
		Database:       database.Open(store, logger),
		Logger:         logger,
		AccrualRate:    cfg.Accrual.Rate,
		Operator:       operator,
		RegistrySource: cfg.Accrual.Registry,
	})
	checkf(err, "create executor")

	jrpc, err := api.NewJrpc(api.Options{Executor: executor, Logger: logger})
	checkf(err, "create API")

	l, err := listenHttpUrl(cfg.API.ListenAddress)
	checkf(err, "listen on %s", cfg.API.ListenAddress)

	server := &http.Server{Handler: jrpc.NewMux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("Serving API", "address", cfg.API.ListenAddress)
		err := server.Serve(l)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(sctx)
	})

	check(group.Wait())
}

// listenHttpUrl takes a string such as `http://localhost:123` and creates a
// TCP listener.
func listenHttpUrl(s string) (net.Listener, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %v", err)
	}

	if u.Path != "" && u.Path != "/" {
		return nil, fmt.Errorf("invalid address: path is not empty")
	}

	switch u.Scheme {
	case "tcp", "http":
		// Ok
	default:
		return nil, fmt.Errorf("invalid address: unsupported scheme %q", u.Scheme)
	}

	return net.Listen("tcp", u.Host)
}
