// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// load implements the load tests.
package load_test

import (
	"context"
	"flag"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/client"
)

func TestLoad(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "exercisevm load test suites")
}

var (
	requestTimeout time.Duration
	endpoint       string
	workers        int
	invocations    int
)

func init() {
	flag.DurationVar(
		&requestTimeout,
		"request-timeout",
		120*time.Second,
		"timeout for the whole load run",
	)
	flag.StringVar(
		&endpoint,
		"endpoint",
		"",
		"URI of a running exercisevm server; the suite is skipped if empty",
	)
	flag.IntVar(
		&workers,
		"workers",
		8,
		"number of concurrent clients",
	)
	flag.IntVar(
		&invocations,
		"invocations",
		100,
		"invocations issued by each worker",
	)
}

var _ = ginkgo.BeforeSuite(func() {
	if endpoint == "" {
		ginkgo.Skip("no --endpoint given")
	}
})

var _ = ginkgo.Describe("[Load]", func() {
	ginkgo.It("serializes concurrent increments", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cli := client.New(endpoint)
		counterID, err := cli.Deploy(ctx, "extended_counter")
		gomega.Expect(err).Should(gomega.BeNil())

		start := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				cli := client.New(endpoint)
				for i := 0; i < invocations; i++ {
					if _, err := cli.Invoke(gctx, counterID, "increment", nil); err != nil {
						return err
					}
				}
				return nil
			})
		}
		gomega.Expect(g.Wait()).Should(gomega.BeNil())

		total := workers * invocations
		elapsed := time.Since(start)
		log.Info("load finished",
			"invocations", total,
			"elapsed", elapsed,
			"perSecond", float64(total)/elapsed.Seconds(),
		)

		reply, err := cli.Invoke(ctx, counterID, "get_count", nil)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", total))
		gomega.Expect(counterID).ShouldNot(gomega.Equal(ids.Empty))
	})
})
