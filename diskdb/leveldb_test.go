// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package diskdb

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	log "github.com/inconshreveable/log15"
)

func newTestDB(t *testing.T, dir string) database.Database {
	logger := log.New()
	logger.SetHandler(log.DiscardHandler())
	db, err := New(dir, nil, logger, prometheus.NewRegistry())
	require.NoError(t, err)
	return db
}

func keys(it database.Iterator) []string {
	defer it.Release()
	var out []string
	for it.Next() {
		out = append(out, fmt.Sprintf("%s=%s", it.Key(), it.Value()))
	}
	return out
}

// TestMatchesMemDB runs the same operations against both backends.
func TestMatchesMemDB(t *testing.T) {
	disk := newTestDB(t, t.TempDir())
	defer disk.Close()

	for name, db := range map[string]database.Database{"leveldb": disk, "memdb": memdb.New()} {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			for _, k := range []string{"a1", "a2", "b1", "b2", "c"} {
				require.NoError(db.Put([]byte(k), []byte("v"+k)))
			}
			require.NoError(db.Delete([]byte("c")))
			require.NoError(db.Delete([]byte("missing")))

			has, err := db.Has([]byte("a1"))
			require.NoError(err)
			require.True(has)
			_, err = db.Get([]byte("c"))
			require.ErrorIs(err, database.ErrNotFound)

			b := db.NewBatch()
			require.NoError(b.Put([]byte("b3"), []byte("vb3")))
			require.NoError(b.Delete([]byte("a2")))
			require.Positive(b.Size())
			has, err = db.Has([]byte("b3"))
			require.NoError(err)
			require.False(has)
			require.NoError(b.Write())

			require.Equal([]string{"a1=va1", "b1=vb1", "b2=vb2", "b3=vb3"}, keys(db.NewIterator()))
			require.Equal([]string{"b1=vb1", "b2=vb2", "b3=vb3"}, keys(db.NewIteratorWithPrefix([]byte("b"))))
			require.Equal([]string{"b2=vb2", "b3=vb3"}, keys(db.NewIteratorWithStartAndPrefix([]byte("b2"), []byte("b"))))
			require.Equal([]string{"b3=vb3"}, keys(db.NewIteratorWithStart([]byte("b3"))))
			require.Equal([]string{"b1=vb1", "b2=vb2", "b3=vb3"}, keys(db.NewIteratorWithStartAndPrefix([]byte("a"), []byte("b"))))
		})
	}
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	db := newTestDB(t, dir)
	require.NoError(db.Put([]byte("k"), []byte("v")))
	require.NoError(db.Close())

	_, err := db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(db.Close(), database.ErrClosed)
	require.ErrorIs(db.NewIterator().Error(), database.ErrClosed)

	db = newTestDB(t, dir)
	defer db.Close()
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)

	_, err = db.HealthCheck(context.Background())
	require.NoError(err)
}

func TestMetricsRegistered(t *testing.T) {
	require := require.New(t)

	logger := log.New()
	logger.SetHandler(log.DiscardHandler())
	reg := prometheus.NewRegistry()
	db, err := New(t.TempDir(), nil, logger, reg)
	require.NoError(err)
	defer db.Close()

	families, err := reg.Gather()
	require.NoError(err)
	require.NotEmpty(families)
	for _, f := range families {
		require.True(strings.HasPrefix(f.GetName(), metricsPrefix), f.GetName())
	}
}

func TestInvalidConfig(t *testing.T) {
	logger := log.New()
	logger.SetHandler(log.DiscardHandler())
	_, err := New(t.TempDir(), []byte("{"), logger, prometheus.NewRegistry())
	require.Error(t, err)
}

func TestLogWriter(t *testing.T) {
	require := require.New(t)

	var got []string
	logger := log.New()
	logger.SetHandler(log.FuncHandler(func(r *log.Record) error {
		got = append(got, r.Msg)
		return nil
	}))
	w := &logWriter{log: logger}
	n, err := w.Write([]byte("compaction done\n"))
	require.NoError(err)
	require.Equal(16, n)
	_, err = w.Write([]byte("  \n"))
	require.NoError(err)
	require.Equal([]string{"compaction done"}, got)
	require.NoError(w.Close())
}
