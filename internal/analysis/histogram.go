package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistogramOptions controls binning
type HistogramOptions struct {
	// Bins forces an equal-width bin count. 0 selects automatically.
	Bins int
	// MaxBins caps the one-bin-per-value layout used for integral data.
	MaxBins int
	// BarGap is the fraction of each bin width left empty between bars.
	BarGap float64
}

// DefaultHistogramOptions returns automatic binning with a 0.2 bar gap
func DefaultHistogramOptions() HistogramOptions {
	return HistogramOptions{Bins: 0, MaxBins: 50, BarGap: 0.2}
}

// Histogram holds fixed-width bins over a sample.
// len(Edges) == len(Counts)+1 unless the sample was empty.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
	Width  float64   `json:"width"`
	BarGap float64   `json:"bargap"`
	Total  int       `json:"total"`
}

// Bin is one histogram bar
type Bin struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Center float64 `json:"center"`
	Count  int     `json:"count"`
}

// Bins returns the histogram as bars
func (h Histogram) Bins() []Bin {
	bins := make([]Bin, len(h.Counts))
	for i, c := range h.Counts {
		lo, hi := h.Edges[i], h.Edges[i]+h.Width
		bins[i] = Bin{Lower: lo, Upper: hi, Center: lo + h.Width/2, Count: c}
	}
	return bins
}

// ScoreHistogram bins values into equal-width bins. The input is not modified.
func ScoreHistogram(values []float64, opts HistogramOptions) Histogram {
	h := Histogram{BarGap: opts.BarGap, Total: len(values)}
	if len(values) == 0 {
		return h
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]

	var dividers []float64
	switch {
	case lo == hi:
		dividers = []float64{lo - 0.5, lo + 0.5}
	case opts.Bins == 0 && isIntegral(x) && int(hi-lo)+1 <= maxBins(opts):
		n := int(hi-lo) + 1
		dividers = floats.Span(make([]float64, n+1), lo-0.5, hi+0.5)
	default:
		n := opts.Bins
		if n <= 0 {
			n = sturges(len(x))
		}
		dividers = floats.Span(make([]float64, n+1), lo, hi)
		// stat.Histogram bins are half-open; the maximum must fall inside the last one
		dividers[n] = math.Nextafter(hi, math.Inf(1))
	}

	counts := stat.Histogram(nil, dividers, x, nil)

	h.Edges = dividers
	h.Width = (dividers[len(dividers)-1] - dividers[0]) / float64(len(counts))
	h.Counts = make([]int, len(counts))
	for i, c := range counts {
		h.Counts[i] = int(c)
	}
	return h
}

func maxBins(opts HistogramOptions) int {
	if opts.MaxBins <= 0 {
		return DefaultHistogramOptions().MaxBins
	}
	return opts.MaxBins
}

// sturges returns ceil(log2 n) + 1
func sturges(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func isIntegral(x []float64) bool {
	for _, v := range x {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}
