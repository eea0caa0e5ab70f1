package skyline

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/surface"
)

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

var _ = Describe("assignLevels", func() {
	DescribeTable("buckets towers greedily with the last level taking the rest",
		func(towers, levels int, expected []int) {
			counts := make([]int, levels)
			for _, level := range assignLevels(towers, levels) {
				Expect(level).To(BeNumerically(">=", 0))
				Expect(level).To(BeNumerically("<", levels))
				counts[level]++
			}
			Expect(counts).To(Equal(expected))
		},
		Entry("even split", 20, 5, []int{4, 4, 4, 4, 4}),
		Entry("remainder on the last layer", 22, 5, []int{4, 4, 4, 4, 6}),
		Entry("fewer towers than layers", 3, 5, []int{1, 1, 1, 0, 0}),
		Entry("large remainder", 100, 3, []int{33, 33, 34}),
		Entry("no towers", 0, 4, []int{0, 0, 0, 0}),
	)

	It("conserves the tower count and never starves the last layer", func() {
		for n := 2; n <= 100; n++ {
			for l := 2; l <= 10; l++ {
				counts := make([]int, l)
				for _, level := range assignLevels(n, l) {
					counts[level]++
				}
				Expect(sum(counts)).To(Equal(n))
				Expect(counts[l-1]).To(BeNumerically(">=", n/l), "n=%d l=%d", n, l)
			}
		}
	})
})

var _ = Describe("Pencil", func() {
	var (
		cfg     *config.Config
		factory *surface.RecorderFactory
		pencil  *Pencil
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.LayerCount = 5
		cfg.WindowMode = config.WindowsLit
		factory = &surface.RecorderFactory{}
		pencil = NewPencil(cfg, factory, NewRand(2024), nil)
	})

	It("starts empty", func() {
		Expect(pencil.State()).To(Equal(StateEmpty))
		Expect(pencil.RandomTower()).To(BeNil())
		Expect(pencil.FlipRandomWindow()).To(BeNil())
	})

	Describe("Init", func() {
		BeforeEach(func() {
			pencil.Init(20)
		})

		It("creates interleaved tower and fog layers", func() {
			layers := pencil.Layers()
			Expect(layers).To(HaveLen(10))
			for i, l := range layers {
				Expect(l.ID()).To(Equal(i))
				if i%2 == 0 {
					Expect(l.Kind()).To(Equal(KindTowers))
				} else {
					Expect(l.Kind()).To(Equal(KindFog))
				}
			}
			Expect(pencil.TowerLayers()).To(HaveLen(5))
			Expect(pencil.Fogs()).To(HaveLen(5))
			Expect(pencil.State()).To(Equal(StateInitialized))
		})

		It("distributes the towers evenly", func() {
			Expect(pencil.Towers()).To(HaveLen(20))
			Expect(pencil.Distribution()).To(Equal([]int{4, 4, 4, 4, 4}))
			for _, t := range pencil.Towers() {
				Expect(t.Layer().Kind()).To(Equal(KindTowers))
			}
		})

		It("binds every fog to an odd layer", func() {
			for _, f := range pencil.Fogs() {
				Expect(f.Layer().ID() % 2).To(Equal(1))
			}
		})

		It("sizes layers to the viewport plus amplitudes", func() {
			for _, l := range pencil.Layers() {
				w, h := l.Surface().Size()
				Expect(w).To(Equal(cfg.Viewport.Width + int(cfg.AmplitudeX)))
				Expect(h).To(Equal(cfg.Viewport.Height + int(cfg.AmplitudeY)))
			}
		})

		It("tears down the previous scene on re-init", func() {
			old := factory.Made
			Expect(old).To(HaveLen(10))
			pencil.Init(7)
			for _, r := range old {
				Expect(r.Released()).To(BeTrue())
			}
			Expect(pencil.Towers()).To(HaveLen(7))
			Expect(pencil.Layers()).To(HaveLen(10))
			Expect(pencil.State()).To(Equal(StateInitialized))
		})

		It("adds a trailing silhouette layer when asked", func() {
			cfg.Silhouette = true
			pencil.Init(20)
			layers := pencil.Layers()
			Expect(layers).To(HaveLen(11))
			Expect(layers[10].Kind()).To(Equal(KindSilhouette))
			Expect(sum(pencil.Distribution())).To(Equal(20))
		})
	})

	Describe("drawing", func() {
		BeforeEach(func() {
			pencil.Init(20)
		})

		opsOn := func(l *Layer) []surface.Op {
			return l.Surface().(*surface.Recorder).Ops()
		}

		It("paints every tower and moves to rendered", func() {
			pencil.Draw()
			Expect(pencil.State()).To(Equal(StateRendered))

			expected := map[int]int{}
			for _, t := range pencil.Towers() {
				expected[t.Layer().ID()] += 1 + t.LitCount()
			}
			for _, l := range pencil.Layers() {
				Expect(opsOn(l)).To(HaveLen(expected[l.ID()]), "layer %d", l.ID())
			}
		})

		It("keeps geometry intact across repeated draws", func() {
			before := make([][][]bool, 0)
			xs := make([]float64, 0)
			for _, t := range pencil.Towers() {
				before = append(before, t.Windows())
				xs = append(xs, t.X)
			}
			pencil.Draw()
			pencil.Draw()
			for i, t := range pencil.Towers() {
				Expect(t.Windows()).To(Equal(before[i]))
				Expect(t.X).To(Equal(xs[i]))
			}
		})

		It("paints fog only on fog layers", func() {
			pencil.DrawFog()
			for _, l := range pencil.Layers() {
				if l.Kind() == KindFog {
					ops := opsOn(l)
					Expect(ops).To(HaveLen(1))
					Expect(ops[0].Gradient).NotTo(BeNil())
				} else {
					Expect(opsOn(l)).To(BeEmpty())
				}
			}
		})

		It("clears a layer before redrawing it alone", func() {
			pencil.Draw()
			pencil.Draw()
			target := pencil.Towers()[0].Layer()
			other := pencil.Towers()[len(pencil.Towers())-1].Layer()
			Expect(target).NotTo(BeIdenticalTo(other))
			otherOps := len(opsOn(other))

			pencil.DrawLayer(target.ID())

			expected := 0
			for _, t := range pencil.Towers() {
				if t.Layer() == target {
					expected += 1 + t.LitCount()
				}
			}
			Expect(opsOn(target)).To(HaveLen(expected))
			Expect(opsOn(other)).To(HaveLen(otherOps))
		})

		It("ignores unknown layer ids", func() {
			Expect(func() { pencil.DrawLayer(99) }).NotTo(Panic())
			Expect(func() { pencil.DrawLayer(-1) }).NotTo(Panic())
		})
	})

	Describe("window flips", func() {
		BeforeEach(func() {
			pencil.Init(20)
			pencil.Draw()
		})

		totalLit := func() int {
			n := 0
			for _, t := range pencil.Towers() {
				n += t.LitCount()
			}
			return n
		}

		It("flips exactly one cell per call", func() {
			t := pencil.RandomTower()
			Expect(t).NotTo(BeNil())
			before := t.Windows()
			ix, iy := pencil.RandomLightWindows(t)
			after := t.Windows()

			changed := 0
			for x := range before {
				for y := range before[x] {
					if before[x][y] != after[x][y] {
						changed++
						Expect([]int{x, y}).To(Equal([]int{ix, iy}))
					}
				}
			}
			Expect(changed).To(Equal(1))
		})

		It("returns to the original state after two flips of the same cell", func() {
			t := pencil.RandomTower()
			before := t.Windows()
			ix, iy := pencil.RandomLightWindows(t)
			t.Toggle(ix, iy)
			Expect(t.Windows()).To(Equal(before))
		})

		It("repaints only the owning layer", func() {
			lit := totalLit()
			t := pencil.FlipRandomWindow()
			Expect(t).NotTo(BeNil())
			Expect(totalLit()).To(Equal(lit - 1))

			rec := t.Layer().Surface().(*surface.Recorder)
			Expect(rec.Clears()).To(Equal(2))
		})

		It("picks towers and cells uniformly", func() {
			seen := map[*Tower]int{}
			for i := 0; i < 4000; i++ {
				seen[pencil.RandomTower()]++
			}
			Expect(seen).To(HaveLen(20))
			for _, n := range seen {
				Expect(n).To(BeNumerically("~", 200, 80))
			}
		})
	})
})
