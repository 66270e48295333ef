package wheel

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func runToRest(w *Wheel) (Outcome, int) {
	for n := 1; ; n++ {
		if out, done := w.Tick(); done {
			return out, n
		}
	}
}

var _ = Describe("Wheel", func() {
	var w *Wheel

	BeforeEach(func() {
		var err error
		w, err = New([]string{"A", "B", "C", "D"}, DefaultPhysics())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when idle", func() {
		It("starts at angle zero with the trigger visible", func() {
			Expect(w.Spinning()).To(BeFalse())
			Expect(w.Angle()).To(BeZero())
			Expect(w.Velocity()).To(BeZero())
			Expect(w.TriggerVisible()).To(BeTrue())
		})

		It("ignores ticks", func() {
			_, done := w.Tick()
			Expect(done).To(BeFalse())
			Expect(w.Angle()).To(BeZero())
			Expect(w.Ticks()).To(BeZero())
		})

		It("resolves a forced angle without randomness", func() {
			Expect(w.SetAngle(math.Pi / 2)).To(BeTrue())
			out := w.Resolve()
			Expect(out.Index).To(Equal(1))
			Expect(out.Label).To(Equal("B"))
			Expect(out.Winner).To(BeFalse())
			Expect(w.Pointer()).To(Equal(1))
		})
	})

	Context("when spin is triggered", func() {
		It("draws the initial velocity from the configured range", func() {
			Expect(w.Spin(fixedRNG(0.5))).To(BeTrue())
			Expect(w.Spinning()).To(BeTrue())
			Expect(w.Velocity()).To(BeNumerically("~", 14, 1e-12))
			Expect(w.TriggerVisible()).To(BeFalse())
			Expect(w.Generation()).To(Equal(1))
		})

		It("ignores a second spin while spinning", func() {
			w.Spin(fixedRNG(0))
			w.Tick()
			angle, vel := w.Angle(), w.Velocity()

			Expect(w.Spin(fixedRNG(0.99))).To(BeFalse())
			Expect(w.SpinWith(100)).To(BeFalse())
			Expect(w.Angle()).To(Equal(angle))
			Expect(w.Velocity()).To(Equal(vel))
			Expect(w.TriggerVisible()).To(BeFalse())
			Expect(w.Generation()).To(Equal(1))
		})

		It("refuses to force the angle mid-spin", func() {
			w.SpinWith(10)
			Expect(w.SetAngle(1)).To(BeFalse())
		})

		It("follows the pure physics step on every tick", func() {
			w.SpinWith(10)
			p := w.Physics()
			angle, vel := 0.0, 10.0
			for i := 0; i < 25; i++ {
				angle, vel = p.Step(angle, vel)
				w.Tick()
				Expect(w.Angle()).To(Equal(angle))
				Expect(w.Velocity()).To(Equal(vel))
			}
		})
	})

	Context("when the velocity decays below the threshold", func() {
		It("settles in the number of ticks the physics predicts", func() {
			w.SpinWith(20)
			out, ticks := runToRest(w)
			Expect(ticks).To(Equal(297))
			Expect(ticks).To(Equal(w.Physics().TicksToSettle(20)))
			Expect(w.Spinning()).To(BeFalse())
			Expect(w.Velocity()).To(BeZero())
			Expect(w.TriggerVisible()).To(BeTrue())
			Expect(out).To(Equal(w.Resolve()))
		})

		It("keeps accumulating the angle across spins", func() {
			w.SpinWith(8)
			runToRest(w)
			first := w.Angle()
			w.SpinWith(8)
			runToRest(w)
			Expect(w.Angle()).To(BeNumerically("~", 2*first, 1e-9))
			Expect(w.Generation()).To(Equal(2))
		})

		It("classifies the outcome by index parity", func() {
			for _, r := range []float64{0, 0.13, 0.42, 0.77, 0.95} {
				w.Spin(fixedRNG(r))
				out, _ := runToRest(w)
				Expect(out.Winner).To(Equal(out.Index%2 == 0))
				Expect(out.Label).To(Equal(w.Segments()[out.Index]))
			}
		})
	})

	Context("with a tick cap", func() {
		It("forces the wheel to settle", func() {
			p := DefaultPhysics()
			p.MaxTicks = 10
			capped, err := New([]string{"only"}, p)
			Expect(err).NotTo(HaveOccurred())

			capped.SpinWith(20)
			out, ticks := runToRest(capped)
			Expect(ticks).To(Equal(10))
			Expect(out.Index).To(Equal(0))
			Expect(out.Winner).To(BeTrue())
		})
	})
})
