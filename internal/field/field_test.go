package field_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lbmviz/internal/dataio"
	"github.com/san-kum/lbmviz/internal/field"
)

const twoByTwo = "2 2\n100\n1 0 0 0\n0 1 0 0\n"

var _ = Describe("Reshape", func() {
	It("lays values out row-major", func() {
		g, err := field.Reshape([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(0, 2)).To(Equal(3.0))
		Expect(g.At(1, 0)).To(Equal(4.0))
		Expect(g.Row(1)).To(Equal([]float64{4, 5, 6}))
	})

	It("rejects a length mismatch instead of inferring a dimension", func() {
		_, err := field.Reshape([]float64{1, 2, 3, 4, 5}, 2, 3)
		Expect(err).To(MatchError(field.ErrShape))

		var se *field.ShapeError
		Expect(err).To(BeAssignableToTypeOf(se))
	})
})

var _ = Describe("Load", func() {
	It("computes the magnitude grid of a single step", func() {
		ds, err := field.Load(strings.NewReader(twoByTwo))
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Len()).To(Equal(1))
		Expect(ds.Width).To(Equal(2))
		Expect(ds.Height).To(Equal(2))
		Expect(ds.Steps).To(Equal([]string{"100"}))

		mag := ds.Magnitude[0]
		want := [][]float64{{1, 1}, {0, 0}}
		for i := range want {
			for j := range want[i] {
				Expect(mag.At(i, j)).To(BeNumerically("~", want[i][j], 1e-9))
			}
		}
	})

	It("keeps the three stacks parallel across steps", func() {
		in := "3 1\na\n1 2 3\n0 0 0\n\nb\n3 4 0\n4 3 0\n\n"
		ds, err := field.Load(strings.NewReader(in))
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Steps).To(Equal([]string{"a", "b"}))
		Expect(ds.UX).To(HaveLen(2))
		Expect(ds.UY).To(HaveLen(2))
		Expect(ds.Magnitude).To(HaveLen(2))
		Expect(ds.Magnitude[1].Data).To(Equal([]float64{5, 5, 0}))
		Expect(ds.MaxMagnitude()).To(Equal(5.0))
	})

	It("treats step labels as opaque text", func() {
		ds, err := field.Load(strings.NewReader("1 1\n  t=0.5 (restart)  \n1\n0\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Steps[0]).To(Equal("t=0.5 (restart)"))
	})

	It("reports progress once per step", func() {
		var seen []string
		_, err := field.Load(strings.NewReader("1 1\nx\n1\n1\ny\n2\n2\n"),
			field.WithProgress(func(frame int, step string) {
				seen = append(seen, step)
			}))
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]string{"x", "y"}))
	})

	It("returns an empty dataset for a header-only file", func() {
		ds, err := field.Load(strings.NewReader("4 4\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Len()).To(BeZero())
		Expect(ds.MaxMagnitude()).To(BeZero())
	})

	DescribeTable("failures",
		func(in string, target error) {
			_, err := field.Load(strings.NewReader(in))
			Expect(err).To(MatchError(target))
		},
		Entry("short x-velocity line", "2 2\n1\n1 0 0\n0 1 0 0\n", field.ErrShape),
		Entry("long y-velocity line", "2 2\n1\n1 0 0 0\n0 1 0 0 9\n", field.ErrShape),
		Entry("non-numeric velocity", "2 2\n1\n1 0 nan? 0\n0 1 0 0\n", dataio.ErrParse),
		Entry("header with one value", "2\n", dataio.ErrParse),
		Entry("non-numeric header", "a b\n", dataio.ErrParse),
		Entry("header with three values", "2 2 9\n1\n1 0 0 0\n0 1 0 0\n", dataio.ErrParse),
		Entry("empty input", "", dataio.ErrTruncated),
		Entry("label without velocities", "2 2\n1\n", dataio.ErrTruncated),
		Entry("missing y-velocities", "2 2\n1\n1 0 0 0\n", dataio.ErrTruncated),
	)

	It("records the line number of a shape failure", func() {
		_, err := field.Load(strings.NewReader("2 2\n1\n1 0 0 0\n0 1\n"))
		var se *field.ShapeError
		Expect(err).To(HaveOccurred())
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Line).To(Equal(4))
		Expect(se.Got).To(Equal(2))
	})

	It("loads from a file path", func() {
		path := filepath.Join(GinkgoT().TempDir(), "field.txt")
		Expect(os.WriteFile(path, []byte(twoByTwo), 0o644)).To(Succeed())

		ds, err := field.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Len()).To(Equal(1))
	})
})

var _ = Describe("Snapshot.Curl", func() {
	It("excludes the border and uses central differences", func() {
		// uy grows by 1 per column, ux is zero: curl is 2 everywhere inside.
		ux := field.NewGrid(4, 5)
		uy := field.NewGrid(4, 5)
		for i := 0; i < 4; i++ {
			for j := 0; j < 5; j++ {
				uy.Set(i, j, float64(j))
			}
		}
		c := field.Snapshot{UX: ux, UY: uy}.Curl()
		Expect(c.Rows).To(Equal(2))
		Expect(c.Cols).To(Equal(3))
		for _, v := range c.Data {
			Expect(v).To(BeNumerically("~", 2.0, 1e-12))
		}
	})

	It("subtracts the row derivative of ux", func() {
		ux := field.NewGrid(3, 3)
		uy := field.NewGrid(3, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				ux.Set(i, j, float64(3*i))
			}
		}
		c := field.Snapshot{UX: ux, UY: uy}.Curl()
		Expect(c.Data).To(Equal([]float64{-6}))
	})

	It("is empty for grids thinner than three cells", func() {
		c := field.Snapshot{UX: field.NewGrid(2, 2), UY: field.NewGrid(2, 2)}.Curl()
		Expect(c.Data).To(BeEmpty())
		Expect(c.AbsMax()).To(BeZero())
	})
})

var _ = Describe("Dataset.Stats", func() {
	It("summarizes magnitude and vorticity per frame", func() {
		ds, err := field.Load(strings.NewReader(twoByTwo))
		Expect(err).NotTo(HaveOccurred())

		stats := ds.Stats()
		Expect(stats).To(HaveLen(1))
		Expect(stats[0].Step).To(Equal("100"))
		Expect(stats[0].MaxMagnitude).To(BeNumerically("~", 1.0, 1e-12))
		Expect(stats[0].MeanMagnitude).To(BeNumerically("~", 0.5, 1e-12))
		Expect(stats[0].PeakVorticity).To(BeZero())
		Expect(ds.MaxSeries()).To(Equal([]float64{1}))
	})
})
