// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package diskdb persists host state in a leveldb directory.
package diskdb

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"
)

// Name is the db-type selecting this backend.
const Name = leveldb.Name

const metricsPrefix = "exercisevm_leveldb_"

// New opens (or creates) the database at [dir]. [configBytes] is an optional
// JSON leveldb config. Database metrics are registered on [reg].
func New(dir string, configBytes []byte, logger log.Logger, reg prometheus.Registerer) (database.Database, error) {
	db, err := leveldb.New(
		dir,
		configBytes,
		newLogger(logger),
		prometheus.WrapRegistererWithPrefix(metricsPrefix, reg),
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s at %s: %w", Name, dir, err)
	}
	logger.Info("opened database", "type", Name, "dir", dir)
	return db, nil
}

// newLogger routes the database's own log lines into [logger].
func newLogger(logger log.Logger) logging.Logger {
	core := logging.NewWrappedCore(logging.Info, &logWriter{log: logger}, logging.Plain.FileEncoder())
	return logging.NewLogger(Name, core)
}

type logWriter struct {
	log log.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	if msg := bytes.TrimSpace(p); len(msg) > 0 {
		w.log.Info(string(msg))
	}
	return len(p), nil
}

func (*logWriter) Close() error { return nil }
