// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api exposes the executor over JSON-RPC.
package api

import (
	"encoding/json"
	"io"
	stdlog "log"
	"log/slog"
	"mime"
	"net/http"
	"os"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/driptide/driptide/internal/chain"
)

type Options struct {
	Executor *chain.Executor
	Logger   *slog.Logger
}

type JrpcMethods struct {
	Options
	methods  jsonrpc2.MethodMap
	validate *validator.Validate
	logger   *slog.Logger
}

func NewJrpc(opts Options) (*JrpcMethods, error) {
	m := new(JrpcMethods)
	m.Options = opts

	m.logger = opts.Logger
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("module", "jrpc")

	m.validate = validator.New()

	m.populateMethodTable()
	return m, nil
}

func (m *JrpcMethods) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/status", m.jrpc2http(m.Status))
	mux.Handle("/version", m.jrpc2http(m.Version))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/v1", jsonrpc2.HTTPRequestHandler(m.methods, stdlog.New(os.Stdout, "", 0)))
	return mux
}

func (m *JrpcMethods) jrpc2http(jrpc jsonrpc2.MethodFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			res.WriteHeader(http.StatusBadRequest)
			return
		}

		var params json.RawMessage
		mediatype, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if mediatype == "application/json" || mediatype == "text/json" {
			params = body
		}

		r := jrpc(req.Context(), params)
		res.Header().Add("Content-Type", "application/json")
		data, err := json.Marshal(r)
		if err != nil {
			m.logger.Error("Failed to marshal response", "error", err)
			res.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = res.Write(data)
	}
}

func (m *JrpcMethods) parse(params json.RawMessage, target interface{}) error {
	err := json.Unmarshal(params, target)
	if err != nil {
		return validatorError(err)
	}

	err = m.validate.Struct(target)
	if err != nil {
		return validatorError(err)
	}

	return nil
}
