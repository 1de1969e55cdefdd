// Package metrics exports consensus telemetry to Prometheus. Gauges are
// seeded from a state snapshot and then driven purely by published notices,
// so the collector never calls back into the engine while it is publishing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/inter"
)

// Source is the notice feed and state the collector follows.
type Source interface {
	SubscribeEvents(ch chan<- inter.Envelope) event.Subscription
	State() (inter.ChainState, error)
	ActiveProposals() ([]uint32, error)
}

// Collector holds the consensus metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	height      prometheus.Gauge
	difficulty  prometheus.Gauge
	totalSupply prometheus.Gauge
	blockReward prometheus.Gauge
	bestTD      prometheus.Gauge
	proposals   prometheus.Gauge
	solutions   prometheus.Counter
	orphanPaid  prometheus.Counter
	penalties   prometheus.Counter
	bestChanges prometheus.Counter
	notices     *prometheus.CounterVec

	// active mirrors the proposals gauge so closing never drives it negative
	active int

	log logrus.FieldLogger
}

// New registers the collector's metrics under namespace.
func New(namespace string, log logrus.FieldLogger) *Collector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	c := &Collector{
		registry:    prometheus.NewRegistry(),
		height:      gauge("block_height", "Last initialized block number"),
		difficulty:  gauge("difficulty", "Current PoW difficulty"),
		totalSupply: gauge("total_supply", "Total issued supply in base units"),
		blockReward: gauge("block_reward", "Current block reward in base units"),
		bestTD:      gauge("best_total_difficulty", "Total difficulty of the best block"),
		proposals:   gauge("active_proposals", "Proposals still open for voting"),
		solutions:   counter("solutions_accepted_total", "Accepted PoW solutions"),
		orphanPaid:  counter("orphan_rewards_total", "Orphan reward payments"),
		penalties:   counter("penalties_total", "Applied penalties"),
		bestChanges: counter("best_block_changes_total", "Best block changes"),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_total",
			Help:      "Published notices by name",
		}, []string{"name"}),
		log: log.WithField("module", "metrics"),
	}
	c.registry.MustRegister(
		c.height, c.difficulty, c.totalSupply, c.blockReward, c.bestTD, c.proposals,
		c.solutions, c.orphanPaid, c.penalties, c.bestChanges, c.notices,
	)
	return c
}

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SetState seeds the gauges from a snapshot.
func (c *Collector) SetState(st inter.ChainState) {
	c.height.Set(float64(st.LastInitialized))
	c.difficulty.Set(st.CurrentDifficulty.Float64())
	c.totalSupply.Set(st.TotalSupply.Float64())
	c.blockReward.Set(st.CurrentBlockReward.Float64())
}

// SetActiveProposals seeds the open proposal gauge.
func (c *Collector) SetActiveProposals(n int) {
	c.active = n
	c.proposals.Set(float64(n))
}

func (c *Collector) addActive(delta int) {
	c.active += delta
	if c.active < 0 {
		c.active = 0
	}
	c.proposals.Set(float64(c.active))
}

// Observe updates the metrics with one notice.
func (c *Collector) Observe(env inter.Envelope) {
	if env.Event == nil {
		return
	}
	c.notices.WithLabelValues(env.Event.EventName()).Inc()
	c.height.Set(float64(env.Block))

	switch ev := env.Event.(type) {
	case inter.RewardPaid:
		c.totalSupply.Add(ev.Amount.Float64())
	case inter.OrphanBlockRewardPaid:
		c.orphanPaid.Inc()
		c.totalSupply.Add(ev.Amount.Float64())
	case inter.MaxSupplyReached:
		c.totalSupply.Set(ev.TotalSupply.Float64())
	case inter.HalvingOccurred:
		c.blockReward.Set(ev.NewReward.Float64())
	case inter.ProposalExecuted:
		if ev.Kind == inter.BlockRewardProposal {
			c.blockReward.Set(ev.Value.Float64())
		}
		c.addActive(-1)
	case inter.ProposalRejected:
		c.addActive(-1)
	case inter.ProposalCreated:
		c.addActive(1)
	case inter.DifficultyAdjusted:
		c.difficulty.Set(ev.New.Float64())
	case inter.BlockAddedToGhost:
		c.solutions.Inc()
	case inter.BestBlockChanged:
		c.bestChanges.Inc()
		c.bestTD.Set(ev.TotalDifficulty.Float64())
	case inter.PenaltyApplied:
		c.penalties.Inc()
	}
}

// Run follows src until ctx is cancelled or the subscription fails.
func (c *Collector) Run(ctx context.Context, src Source) error {
	ch := make(chan inter.Envelope, 256)
	sub := src.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	// seed after subscribing, so no notice falls between snapshot and feed
	if st, err := src.State(); err == nil {
		c.SetState(st)
	} else {
		c.log.WithError(err).Debug("No state to seed metrics from")
	}
	if ids, err := src.ActiveProposals(); err == nil {
		c.SetActiveProposals(len(ids))
	}

	for {
		select {
		case env := <-ch:
			c.Observe(env)
		case err := <-sub.Err():
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

// Serve exposes Handler at /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	c.log.WithField("addr", addr).Info("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
