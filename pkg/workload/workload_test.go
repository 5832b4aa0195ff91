package workload_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Yunpeng-J/zipf/pkg/metrics/disabled"
	"github.com/Yunpeng-J/zipf/pkg/workload"
	"github.com/Yunpeng-J/zipf/pkg/zipf"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("fills defaults", func() {
		conf := workload.Config{}.WithDefaults()
		Expect(conf.Sampler).To(Equal(workload.SamplerTable))
		Expect(conf.Keys).To(Equal(100000))
		Expect(conf.Exponent).To(Equal(0.0))
		Expect(conf.Start).To(Equal(1.0))
		Expect(conf.Buffer).To(Equal(1024))
		Expect(conf.KeyLength).To(Equal(64))

		conf = workload.Config{Sampler: workload.SamplerRejection}.WithDefaults()
		Expect(conf.Exponent).To(Equal(1.1))
	})

	It("rejects invalid settings", func() {
		base := workload.Config{Sampler: workload.SamplerTable, Keys: 10, Buffer: 1, KeyLength: 8}
		Expect(base.Validate()).To(Succeed())

		bad := base
		bad.Keys = 0
		Expect(bad.Validate()).To(MatchError("keys must be positive, got 0"))

		bad = base
		bad.Sampler = "pareto"
		Expect(bad.Validate()).To(MatchError("unknown sampler type: pareto"))

		bad = base
		bad.Buffer = -1
		Expect(bad.Validate()).To(HaveOccurred())

		bad = base
		bad.KeyLength = 0
		Expect(bad.Validate()).To(HaveOccurred())

		bad = base
		bad.Sampler = workload.SamplerRejection
		bad.Exponent = 1.0
		bad.Start = 1.0
		err := bad.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(zipf.ErrInvalidExponent))
	})

	It("builds every sampler", func() {
		for name, expected := range map[string]interface{}{
			workload.SamplerTable:     &zipf.Table{},
			workload.SamplerRejection: &zipf.RejectionInversion{},
		} {
			s, err := workload.NewSampler(workload.Config{Sampler: name, Keys: 10, Exponent: 1.2, Start: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeAssignableToTypeOf(expected))
		}
		s, err := workload.NewSampler(workload.Config{Sampler: workload.SamplerUniform, Keys: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Sample(zipf.Func(func() float64 { return 0.99 }))).To(Equal(uint64(3)))
		Expect(s.Sample(zipf.Func(func() float64 { return 0 }))).To(Equal(uint64(0)))
	})

	It("reports the targeted law", func() {
		Expect(workload.Masses(workload.Config{Sampler: workload.SamplerTable, Keys: 5, Exponent: 1})).
			To(Equal(zipf.Masses(5, 1, 1)))
		Expect(workload.Masses(workload.Config{Sampler: workload.SamplerRejection, Keys: 5, Exponent: 1.5, Start: 3})).
			To(BeNil())
		for _, m := range workload.Masses(workload.Config{Sampler: workload.SamplerUniform, Keys: 4}) {
			Expect(m).To(BeNumerically("~", 0.25, 1e-12))
		}
	})
})

var _ = Describe("Keyspace", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "keyspace")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("draws distinct names deterministically", func() {
		a, err := workload.NewKeyspace(500, 12, 7)
		Expect(err).NotTo(HaveOccurred())
		b, err := workload.NewKeyspace(500, 12, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))

		seen := map[string]bool{}
		for _, k := range a {
			Expect(k).To(HaveLen(12))
			Expect(seen).NotTo(HaveKey(k))
			seen[k] = true
		}
	})

	It("fails when the names run out", func() {
		_, err := workload.NewKeyspace(100, 1, 1)
		Expect(err).To(MatchError("cannot draw 100 distinct keys of length 1"))
	})

	It("round trips through a file", func() {
		keys, err := workload.NewKeyspace(64, 16, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(keys.Save(dir)).To(Succeed())
		Expect(filepath.Join(dir, "keyspace", "keyspace.txt")).To(BeARegularFile())

		loaded, err := workload.LoadKeyspace(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(keys))
	})

	It("reports a missing file", func() {
		_, err := workload.LoadKeyspace(dir)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("WorkloadProvider", func() {
	var (
		conf workload.Config
		dir  string
	)

	BeforeEach(func() {
		conf = workload.Config{
			Sampler:   workload.SamplerRejection,
			Keys:      100,
			Exponent:  1.2,
			Start:     1,
			Seed:      11,
			Buffer:    16,
			KeyLength: 8,
		}
		var err error
		dir, err = ioutil.TempDir("", "trace")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("refuses a keyspace of the wrong size", func() {
		keys, err := workload.NewKeyspace(10, 8, 1)
		Expect(err).NotTo(HaveOccurred())
		_, err = workload.NewWorkloadProvider(conf, keys, &disabled.Provider{})
		Expect(err).To(MatchError("keyspace holds 10 keys, config wants 100"))
	})

	It("refuses an invalid config", func() {
		conf.Start = 0.5
		_, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).To(MatchError(zipf.ErrInvalidStart))
	})

	It("keeps every access inside the keyspace", func() {
		wlp, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).NotTo(HaveOccurred())
		keys := wlp.Keyspace()
		stream := wlp.Stream(0)
		counts := make([]int, conf.Keys)
		for i := 1; i <= 2000; i++ {
			a := stream.Next()
			Expect(a.Seq).To(Equal(uint64(i)))
			Expect(a.Index).To(BeNumerically("<", conf.Keys))
			Expect(a.Key).To(Equal(keys[a.Index]))
			counts[a.Index]++
		}
		Expect(counts[0]).To(BeNumerically(">", counts[conf.Keys-1]))
	})

	It("replays a client stream from the seed", func() {
		wlp, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).NotTo(HaveOccurred())
		a, b, other := wlp.Stream(3), wlp.Stream(3), wlp.Stream(4)
		same, differs := true, false
		for i := 0; i < 200; i++ {
			x, y, z := a.Next(), b.Next(), other.Next()
			same = same && x == y
			differs = differs || x.Index != z.Index
		}
		Expect(same).To(BeTrue())
		Expect(differs).To(BeTrue())
	})

	It("hands out accesses until stopped", func() {
		conf.Sampler = workload.SamplerTable
		wlp, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).NotTo(HaveOccurred())

		gen := wlp.ForEachClient(0)
		for i := 1; i <= 100; i++ {
			a, ok := gen.Generate()
			Expect(ok).To(BeTrue())
			Expect(a.Seq).To(Equal(uint64(i)))
		}
		gen.Stop()
		gen.Stop()
		Eventually(func() bool {
			_, ok := gen.Generate()
			return ok
		}).Should(BeFalse())
	})

	It("splits a trace over clients", func() {
		wlp, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).NotTo(HaveOccurred())
		Expect(wlp.Trace(dir, 3, 100)).To(Succeed())

		total := 0
		for i, want := range []int{34, 33, 33} {
			accesses, err := workload.ReadTrace(workload.TraceFile(dir, i))
			Expect(err).NotTo(HaveOccurred())
			Expect(accesses).To(HaveLen(want))
			for _, a := range accesses {
				Expect(a.Key).To(Equal(wlp.Keyspace()[a.Index]))
			}
			total += len(accesses)
		}
		Expect(total).To(Equal(100))
	})

	It("rejects a trace without clients", func() {
		wlp, err := workload.NewWorkloadProvider(conf, nil, &disabled.Provider{})
		Expect(err).NotTo(HaveOccurred())
		Expect(wlp.Trace(dir, 0, 10)).To(MatchError("clients must be positive, got 0"))
	})
})
