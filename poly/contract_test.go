package poly_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cwbudde/algo-polymul/internal/reference"
	"github.com/cwbudde/algo-polymul/internal/testutil"
	"github.com/cwbudde/algo-polymul/poly"
)

// backendEntries builds one table entry per registered backend.
func backendEntries() []TableEntry {
	var entries []TableEntry
	for _, e := range poly.Entries() {
		entries = append(entries, Entry(e.Name, e.Name))
	}
	return entries
}

func lookupOrSkip(name string) poly.Backend {
	b, err := poly.Lookup(name)
	if errors.Is(err, poly.ErrBackendUnavailable) {
		Skip("backend " + name + " unavailable: " + err.Error())
	}
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("Multiply contract", func() {
	DescribeTable("expands (1 + 2x + 3x^2)(4 + 5x)",
		func(name string) {
			b := lookupOrSkip(name)

			product, err := poly.MultiplyWith(b, []float64{1, 2, 3}, []float64{4, 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(product).To(Equal([]float64{4, 13, 22, 15}))
		},
		backendEntries(),
	)

	DescribeTable("rejects empty operands before writing output",
		func(name string) {
			b := lookupOrSkip(name)
			dst := []float64{3, 3}

			Expect(poly.MultiplyToWith(b, dst, nil, []float64{1, 2})).To(MatchError(poly.ErrInvalidInput))
			Expect(poly.MultiplyToWith(b, dst, []float64{1, 2}, []float64{})).To(MatchError(poly.ErrInvalidInput))
			Expect(dst).To(Equal([]float64{3, 3}))

			_, err := poly.MultiplyWith(b, []float64{}, []float64{})
			Expect(err).To(MatchError(poly.ErrInvalidInput))
		},
		backendEntries(),
	)

	DescribeTable("is commutative and has length n+m-1",
		func(name string) {
			b := lookupOrSkip(name)
			p1 := testutil.SignedCoefficients(100, 1, 57)
			p2 := testutil.SignedCoefficients(101, 1, 23)

			ab, err := poly.MultiplyWith(b, p1, p2)
			Expect(err).NotTo(HaveOccurred())
			ba, err := poly.MultiplyWith(b, p2, p1)
			Expect(err).NotTo(HaveOccurred())

			Expect(ab).To(HaveLen(57 + 23 - 1))
			Expect(reference.AllClose(ab, ba, 1e-12, 1e-12)).To(BeTrue())
		},
		backendEntries(),
	)

	DescribeTable("matches the FFT reference for length-1000 operands",
		func(name string) {
			b := lookupOrSkip(name)
			p1 := testutil.RandomCoefficients(7, 1000)
			p2 := testutil.RandomCoefficients(8, 1000)

			got, err := poly.MultiplyWith(b, p1, p2)
			Expect(err).NotTo(HaveOccurred())
			want, err := reference.Convolve(p1, p2)
			Expect(err).NotTo(HaveOccurred())

			rel, err := reference.MaxRelDiff(got, want)
			Expect(err).NotTo(HaveOccurred())
			Expect(rel).To(BeNumerically("<=", 1e-9))
		},
		backendEntries(),
	)

	DescribeTable("propagates NaN and Inf like the naive loop",
		func(name string) {
			b := lookupOrSkip(name)
			p1 := []float64{1, math.NaN(), 2, -1, 0, 3}
			p2 := []float64{2, 1, math.Inf(1), -1, 0.5}

			got, err := poly.MultiplyWith(b, p1, p2)
			Expect(err).NotTo(HaveOccurred())
			want, err := poly.MultiplyWith(poly.Naive{}, p1, p2)
			Expect(err).NotTo(HaveOccurred())

			Expect(got).To(HaveLen(len(want)))
			for k := range want {
				if math.IsNaN(want[k]) {
					Expect(math.IsNaN(got[k])).To(BeTrue(), "coefficient %d = %v, want NaN", k, got[k])
					continue
				}
				Expect(got[k]).To(Equal(want[k]), "coefficient %d", k)
			}
		},
		backendEntries(),
	)

	It("multiplies with the default backend", func() {
		product, err := poly.Multiply([]float64{2}, []float64{0.5, 0.25})
		Expect(err).NotTo(HaveOccurred())
		Expect(product).To(Equal([]float64{1, 0.5}))
	})

	It("reports unknown backends", func() {
		_, err := poly.Lookup("gpu")
		Expect(err).To(MatchError(poly.ErrUnknownBackend))
	})
})
