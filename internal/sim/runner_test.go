package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springlab/internal/dynamo"
	"github.com/san-kum/springlab/internal/metrics"
	"github.com/san-kum/springlab/internal/oscillator"
	"github.com/san-kum/springlab/internal/sim"
)

type countingObserver struct {
	calls int
	last  dynamo.State
}

func (c *countingObserver) OnStep(s dynamo.State) {
	c.calls++
	c.last = s
}

var _ = Describe("Runner", func() {
	var sys *oscillator.System

	BeforeEach(func() {
		var err error
		sys, err = oscillator.New(1, 0, 1, 1, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a non-positive timestep", func() {
		_, err := sim.New(sys).Run(context.Background(), sim.Config{Dt: 0, Duration: 1})
		Expect(err).To(MatchError(ContainSubstring("dt must be positive")))
	})

	It("rejects a non-positive duration", func() {
		_, err := sim.New(sys).Run(context.Background(), sim.Config{Dt: 0.01, Duration: -1})
		Expect(err).To(MatchError(ContainSubstring("duration must be positive")))
	})

	It("records the initial snapshot plus one per step", func() {
		result, err := sim.New(sys).Run(context.Background(), sim.Config{Dt: 0.01, Duration: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Steps).To(Equal(100))
		Expect(result.Times).To(HaveLen(101))
		Expect(result.Positions).To(HaveLen(101))
		Expect(result.Times[0]).To(BeZero())
	})

	It("advances time by exactly dt per step", func() {
		result, err := sim.New(sys).Run(context.Background(), sim.Config{Dt: 0.016, Duration: 2})
		Expect(err).NotTo(HaveOccurred())
		for i, tm := range result.Times {
			Expect(tm).To(BeNumerically("~", float64(i)*0.016, 1e-9))
		}
	})

	It("conserves energy for the undamped unforced case", func() {
		result, err := sim.New(sys).Run(context.Background(), sim.Config{Dt: 0.01, Duration: 10})
		Expect(err).NotTo(HaveOccurred())

		e0 := result.Energies[0]
		for _, e := range result.Energies {
			Expect(math.Abs(e-e0) / e0).To(BeNumerically("<", 1e-4))
		}
	})

	It("produces identical trajectories for identical configurations", func() {
		run := func() *sim.Result {
			s, _ := oscillator.New(1.5, 0.3, 4, 0.8, -0.1)
			Expect(s.SetForcing("cosine", map[string]float64{"frequency": 0.4})).To(Succeed())
			r, err := sim.New(s).Run(context.Background(), sim.Config{Dt: 0.01, Duration: 5})
			Expect(err).NotTo(HaveOccurred())
			return r
		}

		Expect(run().Positions).To(Equal(run().Positions))
	})

	It("fans snapshots out to observers", func() {
		obs := &countingObserver{}
		runner := sim.New(sys)
		runner.AddObserver(obs)

		_, err := runner.Run(context.Background(), sim.Config{Dt: 0.01, Duration: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.calls).To(Equal(101))
		Expect(obs.last.Time).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("collects metric values into the result", func() {
		runner := sim.New(sys)
		runner.AddMetric(metrics.NewPeakAmplitude())

		result, err := runner.Run(context.Background(), sim.Config{Dt: 0.01, Duration: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKey("peak_amplitude"))
		Expect(result.Metrics["peak_amplitude"]).To(BeNumerically("~", 1.0, 0.01))
	})

	It("stops on context cancellation with a partial result", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := sim.New(sys).Run(ctx, sim.Config{Dt: 0.01, Duration: 10})
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Steps).To(BeZero())
		Expect(result.Times).To(HaveLen(1))
	})

	It("stops streaming when the callback declines more data", func() {
		var seen int
		err := sim.New(sys).RunWithCallback(context.Background(), sim.Config{Dt: 0.01, Duration: 10}, func(dynamo.State) bool {
			seen++
			return seen < 5
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(5))
	})
})
