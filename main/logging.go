// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	log "github.com/inconshreveable/log15"
)

const (
	logMaxSizeMB  = 16
	logMaxBackups = 4
	logMaxAgeDays = 7
)

// newLogHandler writes to stderr and, if [file] is set, to a rotating file.
// The returned closer flushes the file sink.
func newLogHandler(level, file string) (log.Handler, func() error, error) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return nil, nil, err
	}
	handler := log.StreamHandler(os.Stderr, log.TerminalFormat())
	closer := func() error { return nil }
	if file != "" {
		rw := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		handler = log.MultiHandler(handler, log.StreamHandler(rw, log.LogfmtFormat()))
		closer = rw.Close
	}
	return log.LvlFilterHandler(lvl, handler), closer, nil
}
