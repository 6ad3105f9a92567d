// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/api"
	"github.com/ava-labs/exercisevm/client"
	"github.com/ava-labs/exercisevm/contracts/catalog"
	"github.com/ava-labs/exercisevm/exercisevm"
	"github.com/ava-labs/exercisevm/exercisevm/hosttest"
)

func TestAPI(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "exercisevm API Ginkgo Suite")
}

var (
	host   *exercisevm.Host
	clock  *mockable.Clock
	server *httptest.Server
	cli    client.Client
	cfg    = hosttest.Config()
)

var _ = ginkgo.BeforeSuite(func() {
	registry, err := catalog.Registry()
	gomega.Expect(err).Should(gomega.BeNil())

	clock = &mockable.Clock{}
	clock.Set(hosttest.Genesis)
	logger := log.New()
	logger.SetHandler(log.DiscardHandler())
	metrics := prometheus.NewRegistry()

	host, err = exercisevm.New(memdb.New(), registry, cfg,
		exercisevm.WithClock(clock),
		exercisevm.WithLogger(logger),
		exercisevm.WithRegisterer(metrics),
	)
	gomega.Expect(err).Should(gomega.BeNil())

	handler, err := api.NewRouter(host, logger, metrics, []string{"*"})
	gomega.Expect(err).Should(gomega.BeNil())
	server = httptest.NewServer(handler)
	cli = client.New(server.URL)
})

var _ = ginkgo.AfterSuite(func() {
	server.Close()
	gomega.Expect(host.Close()).Should(gomega.BeNil())
})

func advance(ledgers int) {
	clock.Set(clock.Time().Add(time.Duration(ledgers) * cfg.LedgerInterval))
}

func get(path string) (int, []byte) {
	resp, err := http.Get(server.URL + path)
	gomega.Expect(err).Should(gomega.BeNil())
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	gomega.Expect(err).Should(gomega.BeNil())
	return resp.StatusCode, body
}

var _ = ginkgo.Describe("[Service]", ginkgo.Ordered, func() {
	var (
		ctx       = context.Background()
		counterID ids.ID
		greeterID ids.ID
	)

	ginkgo.It("lists the catalog", func() {
		reply, err := cli.Contracts(ctx)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Available).Should(gomega.HaveLen(len(catalog.Contracts())))
		gomega.Expect(reply.Deployed).Should(gomega.BeEmpty())
	})

	ginkgo.It("rejects unknown contracts", func() {
		_, err := cli.Deploy(ctx, "missing")
		gomega.Expect(err).ShouldNot(gomega.BeNil())
	})

	ginkgo.It("deploys and invokes", func() {
		var err error
		counterID, err = cli.Deploy(ctx, "counter")
		gomega.Expect(err).Should(gomega.BeNil())

		for i := 1; i <= 2; i++ {
			reply, err := cli.Invoke(ctx, counterID, "increment", nil)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", i))
		}

		reply, err := cli.Invoke(ctx, counterID, "get_count", nil)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", 2))
		gomega.Expect(reply.Ledger.Sequence).Should(gomega.Equal(uint32(1)))

		contracts, err := cli.Contracts(ctx)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(contracts.Deployed).Should(gomega.HaveLen(1))
		gomega.Expect(contracts.Deployed[0].ContractID).Should(gomega.Equal(counterID))
	})

	ginkgo.It("discards simulated writes", func() {
		reply, err := cli.Invoke(ctx, counterID, "increment", nil, client.Simulate())
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", 3))

		reply, err = cli.Invoke(ctx, counterID, "get_count", nil)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", 2))
	})

	ginkgo.It("reports aborts and rolls them back", func() {
		_, err := cli.Invoke(ctx, counterID, "decrement_by", []interface{}{3})
		var apiErr *api.Error
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeTrue())
		gomega.Expect(apiErr.Aborted).Should(gomega.BeTrue())
		gomega.Expect(apiErr.Code).Should(gomega.BeZero())

		reply, err := cli.Invoke(ctx, counterID, "get_count", nil)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", 2))
	})

	ginkgo.It("reports tagged errors", func() {
		var err error
		greeterID, err = cli.Deploy(ctx, "greeter")
		gomega.Expect(err).Should(gomega.BeNil())

		user := hosttest.Addr()
		_, err = cli.Invoke(ctx, greeterID, "hello", []interface{}{user, ""})
		var apiErr *api.Error
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeTrue())
		gomega.Expect(apiErr.Aborted).Should(gomega.BeFalse())
		gomega.Expect(apiErr.Code).Should(gomega.Equal(uint32(1)))

		reply, err := cli.Invoke(ctx, greeterID, "hello", []interface{}{user, "Ana"})
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.Equal("Hola"))
		gomega.Expect(reply.Events).Should(gomega.HaveLen(1))
	})

	ginkgo.It("checks signatures", func() {
		admin := hosttest.Addr()
		_, err := cli.Invoke(ctx, greeterID, "initialize", []interface{}{admin})
		gomega.Expect(err).Should(gomega.BeNil())

		_, err = cli.Invoke(ctx, greeterID, "reset_counter", []interface{}{admin})
		var apiErr *api.Error
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeTrue())
		gomega.Expect(apiErr.Code).Should(gomega.Equal(uint32(3)))

		_, err = cli.Invoke(ctx, greeterID, "reset_counter", []interface{}{admin}, client.WithAuths(admin))
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.It("fails host errors at the RPC layer", func() {
		_, err := cli.Invoke(ctx, counterID, "missing", nil)
		gomega.Expect(err).ShouldNot(gomega.BeNil())
		var apiErr *api.Error
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeFalse())

		_, err = cli.Invoke(ctx, counterID, "increment_by", []interface{}{"many"})
		gomega.Expect(err).ShouldNot(gomega.BeNil())
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeFalse())
	})

	ginkgo.It("serves committed events", func() {
		events, err := cli.Events(ctx, 0, 0)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(events).ShouldNot(gomega.BeEmpty())
		last := events[len(events)-1]
		gomega.Expect(last.ContractID).Should(gomega.Equal(greeterID))

		tail, err := cli.Events(ctx, last.Index, 10)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(tail).Should(gomega.HaveLen(1))
	})

	ginkgo.It("restores archived instances", func() {
		advance(200)
		ledger, err := cli.Ledger(ctx)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(ledger.Sequence).Should(gomega.Equal(uint32(201)))

		_, err = cli.Invoke(ctx, counterID, "increment", nil)
		var apiErr *api.Error
		gomega.Expect(errors.As(err, &apiErr)).Should(gomega.BeTrue())
		gomega.Expect(apiErr.Aborted).Should(gomega.BeTrue())

		gomega.Expect(cli.Restore(ctx, counterID)).Should(gomega.BeNil())
		reply, err := cli.Invoke(ctx, counterID, "increment", nil)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(reply.Value).Should(gomega.BeNumerically("==", 3))

		gomega.Expect(cli.Restore(ctx, ids.GenerateTestID())).ShouldNot(gomega.BeNil())
	})

	ginkgo.It("serves health and metrics", func() {
		status, body := get(api.HealthPath)
		gomega.Expect(status).Should(gomega.Equal(http.StatusOK))
		var health api.HealthReply
		gomega.Expect(json.Unmarshal(body, &health)).Should(gomega.BeNil())
		gomega.Expect(health.Healthy).Should(gomega.BeTrue())

		status, body = get(api.MetricsPath)
		gomega.Expect(status).Should(gomega.Equal(http.StatusOK))
		gomega.Expect(string(body)).Should(gomega.ContainSubstring("exercisevm_invocations_total"))
	})
})
