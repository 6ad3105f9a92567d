// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/api"
	"github.com/ava-labs/exercisevm/contracts/catalog"
	"github.com/ava-labs/exercisevm/diskdb"
	"github.com/ava-labs/exercisevm/exercisevm"
)

func main() {
	v, err := getViper(os.Args[1:])
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", exercisevm.Name, exercisevm.Version)
		os.Exit(0)
	}
	cfg, err := buildConfig(v)
	if err != nil {
		fmt.Printf("invalid config: %s\n", err)
		os.Exit(1)
	}

	handler, closeLogs, err := newLogHandler(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Printf("couldn't set up logging: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(handler)

	err = run(cfg)
	if err != nil {
		log.Error("server returned an error", "error", err)
	}
	_ = closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

func openDB(cfg config, reg prometheus.Registerer) (database.Database, error) {
	if cfg.DBType == diskdb.Name {
		return diskdb.New(cfg.DBDir, []byte(cfg.DBConfig), log.New("module", diskdb.Name), reg)
	}
	return memdb.New(), nil
}

func run(cfg config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := catalog.Registry()
	if err != nil {
		return err
	}
	metrics := prometheus.NewRegistry()
	if err := metrics.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	db, err := openDB(cfg, metrics)
	if err != nil {
		return err
	}
	host, err := exercisevm.New(db, registry, cfg.Host, exercisevm.WithRegisterer(metrics))
	if err != nil {
		_ = db.Close()
		return err
	}
	defer host.Close()

	router, err := api.NewRouter(host, log.New("module", "api"), metrics, cfg.AllowedOrigins)
	if err != nil {
		return err
	}
	addr := net.JoinHostPort(cfg.HTTPHost, strconv.Itoa(int(cfg.HTTPPort)))
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("serving", "addr", addr, "endpoint", api.Endpoint, "contracts", len(registry.Names()))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
