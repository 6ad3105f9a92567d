// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/exercisevm/exercisevm"
)

func TestDefaultConfig(t *testing.T) {
	require := require.New(t)

	v, err := getViper(nil)
	require.NoError(err)
	cfg, err := buildConfig(v)
	require.NoError(err)
	require.Equal("memdb", cfg.DBType)
	require.Equal(uint16(9650), cfg.HTTPPort)
	require.Equal([]string{"*"}, cfg.AllowedOrigins)
	require.Equal(5*time.Second, cfg.ReadHeaderTimeout)
	require.Equal(10*time.Second, cfg.ShutdownTimeout)
	require.Equal(exercisevm.DefaultConfig(), cfg.Host)
}

func TestConfigSources(t *testing.T) {
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(file, []byte(`{"min-persistent-ttl": 100, "db-type": "leveldb"}`), 0o600))
	t.Setenv("EXERCISEVM_HTTP_PORT", "9700")

	v, err := getViper([]string{
		"--config-file", file,
		"--ledger-interval", "1s",
		"--log-level", "debug",
		"--read-header-timeout", "2s",
	})
	require.NoError(err)
	cfg, err := buildConfig(v)
	require.NoError(err)
	require.Equal("leveldb", cfg.DBType)
	require.Equal(uint16(9700), cfg.HTTPPort)
	require.Equal("debug", cfg.LogLevel)
	require.Equal(2*time.Second, cfg.ReadHeaderTimeout)
	require.Equal(10*time.Second, cfg.ShutdownTimeout)
	require.Equal(time.Second, cfg.Host.LedgerInterval)
	require.Equal(uint32(100), cfg.Host.MinPersistentTTL)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown db", args: []string{"--db-type", "badger"}},
		{name: "min above max", args: []string{"--min-persistent-ttl", "20", "--max-entry-ttl", "10"}},
		{name: "zero interval", args: []string{"--ledger-interval", "0s"}},
		{name: "zero read header timeout", args: []string{"--read-header-timeout", "0s"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			v, err := getViper(test.args)
			require.NoError(err)
			_, err = buildConfig(v)
			require.Error(err)
		})
	}
}

func TestLogHandler(t *testing.T) {
	require := require.New(t)

	_, _, err := newLogHandler("loud", "")
	require.Error(err)

	file := filepath.Join(t.TempDir(), "exercisevm.log")
	handler, closer, err := newLogHandler("info", file)
	require.NoError(err)
	require.NotNil(handler)
	require.NoError(closer())
}
