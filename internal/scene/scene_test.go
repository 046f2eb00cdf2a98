package scene_test

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/scene"
)

var _ = Describe("Scene", func() {
	var (
		s      *scene.Scene
		a1, a2 *scene.PendulumActor
	)

	BeforeEach(func() {
		s = scene.New("test", logging.Nop())
		a1 = scene.NewPendulumActor("a1", pendulumSolution(1, 0.5), 1, 0.5)
		a2 = scene.NewPendulumActor("a2", pendulumSolution(3, 0.2), 3, 0.2)
		s.Add(a1)
		s.Add(a2)
	})

	It("advances every actor once per tick", func() {
		for i := 0; i < 10; i++ {
			Expect(s.Tick(0.05)).To(Succeed())
		}
		Expect(s.Frames()).To(Equal(10))
		Expect(s.Elapsed()).To(BeNumerically("~", 0.5, 1e-12))
		Expect(a1.Time()).To(BeNumerically("~", 0.5, 1e-12))
		Expect(a2.Time()).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("rejects a negative tick before touching any actor", func() {
		Expect(s.Tick(-0.1)).To(MatchError(scene.ErrNonMonotonic))
		Expect(a1.State()).To(Equal(scene.StateInitialized))
		Expect(s.Elapsed()).To(Equal(0.0))
	})

	It("detaches removed actors and stops updating them", func() {
		Expect(s.Tick(0.1)).To(Succeed())
		Expect(s.Remove(a1.ID())).To(Succeed())
		Expect(a1.State()).To(Equal(scene.StateDetached))
		Expect(s.Actors()).To(HaveLen(1))

		Expect(s.Tick(0.1)).To(Succeed())
		Expect(a1.Time()).To(BeNumerically("~", 0.1, 1e-12))
		Expect(a2.Time()).To(BeNumerically("~", 0.2, 1e-12))

		Expect(s.Remove(a1.ID())).To(MatchError(scene.ErrUnknownActor))
		Expect(s.Remove(uuid.New())).To(MatchError(scene.ErrUnknownActor))
	})

	It("delivers nothing when one actor would fail", func() {
		Expect(s.Tick(0.1)).To(Succeed())
		a2.Detach()

		Expect(s.Tick(0.1)).To(MatchError(scene.ErrDetached))
		Expect(a1.Time()).To(BeNumerically("~", 0.1, 1e-12))
		Expect(s.Elapsed()).To(BeNumerically("~", 0.1, 1e-12))
		Expect(s.Frames()).To(Equal(1))
	})

	It("looks actors up by name", func() {
		a, ok := s.Actor("a2")
		Expect(ok).To(BeTrue())
		Expect(a.ID()).To(Equal(a2.ID()))
		_, ok = s.Actor("missing")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Build", func() {
	It("builds two labelled pendulums", func() {
		s, err := scene.Build("pendulums", config.DefaultConfig(), nil, logging.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Actors()).To(HaveLen(2))

		labels := s.Labels()
		Expect(labels).To(HaveLen(2))
		Expect(labels[0].Text).To(Equal("T_1 = 2 s"))
		Expect(labels[1].Text).To(Equal("T_2 = 3 s"))

		for _, a := range s.Actors() {
			Expect(a.Value()).To(Equal(0.5))
		}
	})

	It("shares solutions through the cache", func() {
		cache := linode.NewCache()
		_, err := scene.Build("pendulums", config.DefaultConfig(), cache, logging.Nop())
		Expect(err).NotTo(HaveOccurred())
		_, err = scene.Build("pendulums", config.DefaultConfig(), cache, logging.Nop())
		Expect(err).NotTo(HaveOccurred())
		hits, _ := cache.Stats()
		Expect(hits).To(Equal(2))
	})

	DescribeTable("builds every named scene",
		func(name string) {
			s, err := scene.Build(name, config.DefaultConfig(), nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Actors()).NotTo(BeEmpty())
			for i := 0; i < 30; i++ {
				Expect(s.Tick(1.0 / 60)).To(Succeed())
			}
		},
		Entry("pendulums", "pendulums"),
		Entry("pendulum", "pendulum"),
		Entry("spring", "spring"),
	)

	It("propagates parameter errors", func() {
		cfg := config.DefaultConfig()
		cfg.Spring.Mass = 0
		_, err := scene.Build("spring", cfg, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown scenes", func() {
		_, err := scene.Build("square_to_circle", config.DefaultConfig(), nil, nil)
		Expect(err).To(MatchError(ContainSubstring("unknown scene")))
	})
})
