// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/exercisevm/diskdb"
	"github.com/ava-labs/exercisevm/exercisevm"
)

const (
	envPrefix = "exercisevm"

	versionKey           = "version"
	configFileKey        = "config-file"
	httpHostKey          = "http-host"
	httpPortKey          = "http-port"
	dbTypeKey            = "db-type"
	dbDirKey             = "db-dir"
	dbConfigKey          = "db-config"
	logLevelKey          = "log-level"
	logFileKey           = "log-file"
	ledgerIntervalKey    = "ledger-interval"
	minTemporaryTTLKey   = "min-temporary-ttl"
	minPersistentTTLKey  = "min-persistent-ttl"
	maxEntryTTLKey       = "max-entry-ttl"
	eventLogSizeKey      = "event-log-size"
	corsOriginsKey       = "cors-allowed-origins"
	shutdownTimeoutKey   = "shutdown-timeout"
	readHeaderTimeoutKey = "read-header-timeout"
)

type config struct {
	HTTPHost          string
	HTTPPort          uint16
	DBType            string
	DBDir             string
	DBConfig          string
	LogLevel          string
	LogFile           string
	AllowedOrigins    []string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Host              exercisevm.Config
}

func buildFlagSet() *pflag.FlagSet {
	defaults := exercisevm.DefaultConfig()
	fs := pflag.NewFlagSet(exercisevm.Name, pflag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints the version and quits")
	fs.String(configFileKey, "", "Path to a JSON, YAML or TOML config file")
	fs.String(httpHostKey, "127.0.0.1", "Address the HTTP server listens on")
	fs.Uint16(httpPortKey, 9650, "Port the HTTP server listens on")
	fs.String(dbTypeKey, memdb.Name, fmt.Sprintf("Database backend: %s or %s", memdb.Name, diskdb.Name))
	fs.String(dbDirKey, "db", "Directory of the leveldb backend")
	fs.String(dbConfigKey, "", "Optional JSON config of the leveldb backend")
	fs.String(logLevelKey, "info", "Log level: crit, error, warn, info, debug or trace")
	fs.String(logFileKey, "", "If set, logs are also written to this rotating file")
	fs.Duration(ledgerIntervalKey, defaults.LedgerInterval, "Time between ledgers")
	fs.Uint32(minTemporaryTTLKey, defaults.MinTemporaryTTL, "Minimum TTL of a temporary entry, in ledgers")
	fs.Uint32(minPersistentTTLKey, defaults.MinPersistentTTL, "Minimum TTL of persistent entries and instances, in ledgers")
	fs.Uint32(maxEntryTTLKey, defaults.MaxEntryTTL, "Maximum TTL an extension may request, in ledgers")
	fs.Int(eventLogSizeKey, defaults.EventLogSize, "Number of committed events kept for the events API")
	fs.StringSlice(corsOriginsKey, []string{"*"}, "Origins allowed to call the API")
	fs.Duration(readHeaderTimeoutKey, 5*time.Second, "Time allowed to read request headers")
	fs.Duration(shutdownTimeoutKey, 10*time.Second, "Time allowed for in-flight requests on shutdown")

	return fs
}

// getViper returns the viper environment for the server binary
func getViper(args []string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := buildFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if file := v.GetString(configFileKey); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %s: %w", file, err)
		}
	}
	return v, nil
}

func buildConfig(v *viper.Viper) (config, error) {
	c := config{
		HTTPHost:          v.GetString(httpHostKey),
		HTTPPort:          uint16(v.GetUint(httpPortKey)),
		DBType:            v.GetString(dbTypeKey),
		DBDir:             v.GetString(dbDirKey),
		DBConfig:          v.GetString(dbConfigKey),
		LogLevel:          v.GetString(logLevelKey),
		LogFile:           v.GetString(logFileKey),
		AllowedOrigins:    v.GetStringSlice(corsOriginsKey),
		ReadHeaderTimeout: v.GetDuration(readHeaderTimeoutKey),
		ShutdownTimeout:   v.GetDuration(shutdownTimeoutKey),
		Host:              exercisevm.DefaultConfig(),
	}
	c.Host.LedgerInterval = v.GetDuration(ledgerIntervalKey)
	c.Host.MinTemporaryTTL = v.GetUint32(minTemporaryTTLKey)
	c.Host.MinPersistentTTL = v.GetUint32(minPersistentTTLKey)
	c.Host.MaxEntryTTL = v.GetUint32(maxEntryTTLKey)
	c.Host.EventLogSize = v.GetInt(eventLogSizeKey)

	switch c.DBType {
	case memdb.Name, diskdb.Name:
	default:
		return c, fmt.Errorf("unknown %s %q", dbTypeKey, c.DBType)
	}
	if c.ReadHeaderTimeout <= 0 {
		return c, fmt.Errorf("%s must be positive", readHeaderTimeoutKey)
	}
	return c, c.Host.Verify()
}
