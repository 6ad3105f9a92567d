// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultCommitted = "committed"
	resultAborted   = "aborted"
	resultFailed    = "failed"
)

type metrics struct {
	invocations *prometheus.CounterVec
	deployments prometheus.Counter
	events      prometheus.Counter
	duration    prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Name,
			Name:      "invocations_total",
			Help:      "number of invocations by outcome",
		}, []string{"result"}),
		deployments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Name,
			Name:      "deployments_total",
			Help:      "number of deployed contracts",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Name,
			Name:      "events_total",
			Help:      "number of committed events",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Name,
			Name:      "invocation_duration_seconds",
			Help:      "time spent executing an invocation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.deployments),
		r.Register(m.events),
		r.Register(m.duration),
	)
	return m, errs.Err
}
