// Package estimate reduces noisy regional skin samples to a single
// trustworthy color estimate with a clustering confidence. Every input
// resolves to an estimate; degenerate inputs take documented fallback
// branches instead of returning errors.
package estimate

import (
	"math"
	"math/rand"
	"sort"

	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Reason explains which branch produced the estimate, so callers can tell
// why a confidence is low.
type Reason string

const (
	ReasonNoSamples         Reason = "no_samples"
	ReasonTooFewSamples     Reason = "too_few_samples"
	ReasonClustered         Reason = "clustered"
	ReasonDegenerateCluster Reason = "degenerate_cluster"
)

// Estimate is the aggregated color plus a clustering confidence in [0,1].
type Estimate struct {
	Color             colorspace.RGB
	ClusterConfidence float64
	Reason            Reason
}

// Fallback constants. The neutral default is a plausible light-neutral skin
// color; its confidence is the documented low-confidence floor.
const (
	noSampleConfidence   = 0.3
	fewSampleConfidence  = 0.4
	degenerateConfidence = 0.3

	iqrFence     = 1.5
	iqrWideFence = 2.5

	maxClusters    = 4
	maxIterations  = 25
	clusteringSeed = 42
)

var neutralDefault = colorspace.RGB{R: 220, G: 210, B: 200}

// Estimator turns regional samples into one estimate. It is stateless apart
// from constants and safe for concurrent use; the clustering seed is fixed so
// estimates are reproducible.
type Estimator struct{}

// New creates an Estimator.
func New() *Estimator {
	return &Estimator{}
}

// Estimate aggregates regional colors. Zero samples yield the neutral
// default, one or two samples the arithmetic mean, three or more the
// median-anchored cluster centroid after IQR outlier removal.
func (e *Estimator) Estimate(colors []colorspace.RGB) Estimate {
	switch {
	case len(colors) == 0:
		return Estimate{Color: neutralDefault, ClusterConfidence: noSampleConfidence, Reason: ReasonNoSamples}
	case len(colors) < 3:
		return Estimate{Color: meanColor(toVecs(colors)), ClusterConfidence: fewSampleConfidence, Reason: ReasonTooFewSamples}
	}

	vecs := removeBrightnessOutliers(toVecs(colors))

	k := maxClusters
	if len(vecs) < k {
		k = len(vecs)
	}
	centers, assignment := kmeans(vecs, k)

	// Anchor on the median sample rather than the largest cluster: one
	// dominant low-quality region must not drag the estimate.
	med := medianVec(vecs)
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centers {
		if d := dist(c, med); d < bestDist {
			bestDist = d
			best = i
		}
	}

	conf, reason := clusterConfidence(vecs, centers, assignment, best)
	return Estimate{Color: toRGB(centers[best]), ClusterConfidence: conf, Reason: reason}
}

type vec [3]float64

func (v vec) brightness() float64 { return (v[0] + v[1] + v[2]) / 3 }

func toVecs(colors []colorspace.RGB) []vec {
	out := make([]vec, len(colors))
	for i, c := range colors {
		out[i] = vec{float64(c.R), float64(c.G), float64(c.B)}
	}
	return out
}

func toRGB(v vec) colorspace.RGB {
	cl := func(x float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(255, x))))
	}
	return colorspace.RGB{R: cl(v[0]), G: cl(v[1]), B: cl(v[2])}
}

func dist(a, b vec) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

func meanColor(vecs []vec) colorspace.RGB {
	var sum vec
	for _, v := range vecs {
		sum[0] += v[0]
		sum[1] += v[1]
		sum[2] += v[2]
	}
	n := float64(len(vecs))
	return toRGB(vec{sum[0] / n, sum[1] / n, sum[2] / n})
}

func medianVec(vecs []vec) vec {
	var med vec
	tmp := make([]float64, len(vecs))
	for ch := 0; ch < 3; ch++ {
		for i, v := range vecs {
			tmp[i] = v[ch]
		}
		sort.Float64s(tmp)
		n := len(tmp)
		if n%2 == 1 {
			med[ch] = tmp[n/2]
		} else {
			med[ch] = (tmp[n/2-1] + tmp[n/2]) / 2
		}
	}
	return med
}

// removeBrightnessOutliers drops samples outside the IQR fence on per-sample
// brightness. If the standard fence would discard more than half the
// samples, a wider fence is used instead; if everything would be discarded,
// the originals are kept.
func removeBrightnessOutliers(vecs []vec) []vec {
	if len(vecs) < 4 {
		return vecs
	}
	bright := make([]float64, len(vecs))
	for i, v := range vecs {
		bright[i] = v.brightness()
	}
	sorted := make([]float64, len(bright))
	copy(sorted, bright)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	keep := fenceFilter(vecs, bright, q1-iqrFence*iqr, q3+iqrFence*iqr)
	if len(keep)*2 < len(vecs) {
		keep = fenceFilter(vecs, bright, q1-iqrWideFence*iqr, q3+iqrWideFence*iqr)
	}
	if len(keep) == 0 {
		return vecs
	}
	return keep
}

func fenceFilter(vecs []vec, bright []float64, lo, hi float64) []vec {
	var out []vec
	for i, v := range vecs {
		if bright[i] >= lo && bright[i] <= hi {
			out = append(out, v)
		}
	}
	return out
}

// percentile computes the linear-interpolated percentile of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// kmeans clusters the vectors with Lloyd's algorithm. Initialization draws
// distinct sample indices from a fixed-seed generator so results are
// deterministic for a given input.
func kmeans(vecs []vec, k int) (centers []vec, assignment []int) {
	rng := rand.New(rand.NewSource(clusteringSeed)) //nolint:gosec // deterministic seed for reproducible estimates

	centers = make([]vec, k)
	used := make(map[int]bool, k)
	for i := 0; i < k; i++ {
		idx := rng.Intn(len(vecs))
		for used[idx] {
			idx = (idx + 1) % len(vecs)
		}
		used[idx] = true
		centers[i] = vecs[idx]
	}

	assignment = make([]int, len(vecs))
	for iter := 0; iter < maxIterations; iter++ {
		for i, v := range vecs {
			best, bestDist := 0, math.Inf(1)
			for j, c := range centers {
				if d := dist(v, c); d < bestDist {
					bestDist = d
					best = j
				}
			}
			assignment[i] = best
		}

		converged := true
		for j := range centers {
			var sum vec
			n := 0
			for i, v := range vecs {
				if assignment[i] == j {
					sum[0] += v[0]
					sum[1] += v[1]
					sum[2] += v[2]
					n++
				}
			}
			if n == 0 {
				continue
			}
			next := vec{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)}
			if dist(next, centers[j]) > 0.01 {
				converged = false
			}
			centers[j] = next
		}
		if converged {
			break
		}
	}
	return centers, assignment
}

// clusterConfidence scores how well separated the winning cluster is: a
// silhouette-like ratio of inter-cluster separation to intra-cluster spread,
// normalized to [0,1].
func clusterConfidence(vecs []vec, centers []vec, assignment []int, best int) (float64, Reason) {
	var members []vec
	for i, v := range vecs {
		if assignment[i] == best {
			members = append(members, v)
		}
	}
	if len(members) < 2 {
		return degenerateConfidence, ReasonDegenerateCluster
	}

	var intra float64
	for _, m := range members {
		intra += dist(m, centers[best])
	}
	intra /= float64(len(members))

	var inter float64
	n := 0
	for i, c := range centers {
		if i != best {
			inter += dist(centers[best], c)
			n++
		}
	}
	if n > 0 {
		inter /= float64(n)
	} else {
		inter = intra * 2
	}

	if inter <= 0 {
		return 0.5, ReasonClustered
	}
	silhouette := (inter - intra) / math.Max(inter, intra)
	conf := math.Max(0, math.Min(1, (silhouette+1)/2))
	return conf, ReasonClustered
}
