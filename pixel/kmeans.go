package pixel

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pixlgen/parallel"
)

// partition is the outcome of one k-means run.
type partition struct {
	clusters clusters.Clusters
	// labels[i] is the cluster index of observation i.
	labels []int
	// distortion is the sum of squared distances to the assigned centers.
	distortion float64
	err        error
}

// lloydConfig drives bestPartition. tolerance bounds the summed squared
// center movement that ends a run; negative means run until no label
// changes.
type lloydConfig struct {
	k             int
	seed          uint64
	restarts      int
	maxIterations int
	tolerance     float64
	workers       int
	plotter       kmeans.Plotter
}

// bestPartition runs cfg.restarts independently seeded k-means passes and
// keeps the one with the lowest distortion, the first one on ties. Restarts
// may run on several workers, the result does not depend on it.
func bestPartition(points clusters.Observations, cfg lloydConfig) (partition, error) {
	runs := make([]partition, cfg.restarts)
	cfg.tolerance = varianceTolerance(points, cfg.tolerance)

	pool := parallel.Start(max(1, cfg.workers))
	for r := range cfg.restarts {
		pool.Do(func() {
			rng := rand.New(rand.NewPCG(cfg.seed, uint64(r)))
			runs[r] = lloyd(points, cfg, rng)
		})
	}
	pool.Wait(true)

	distortions := make([]float64, len(runs))
	for r, run := range runs {
		if run.err != nil {
			return partition{}, fmt.Errorf("restart %d: %w", r, run.err)
		}
		distortions[r] = run.distortion
	}
	best := floats.MinIdx(distortions)

	logger().Debug("clustered", "points", len(points), "k", cfg.k, "restarts", cfg.restarts,
		"best_restart", best, "distortion", distortions[best])
	return runs[best], nil
}

func lloyd(points clusters.Observations, cfg lloydConfig, rng *rand.Rand) partition {
	cc := seedCenters(points, cfg.k, rng)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}
	sums := make([][3]float64, len(cc))
	counts := make([]int, len(cc))

	for it := range cfg.maxIterations {
		changed := relabel(cc, points, labels)
		if cfg.plotter != nil {
			collect(cc, points, labels)
			if err := cfg.plotter.Plot(cc, it); err != nil {
				return partition{err: fmt.Errorf("could not plot iteration %d: %w", it, err)}
			}
		}

		shift := recenter(cc, points, labels, sums, counts)
		if changed == 0 || (cfg.tolerance >= 0 && shift <= cfg.tolerance) {
			break
		}
	}

	// labels must refer to the centers that end up in the palette
	distortion := assign(cc, points, labels)
	return partition{clusters: cc, labels: labels, distortion: distortion}
}

// relabel points every observation at its nearest center, lowest index on
// ties, and returns how many labels changed. It leaves the observation
// lists of cc alone.
func relabel(cc clusters.Clusters, points clusters.Observations, labels []int) int {
	changed := 0
	for i, pt := range points {
		p := pt.Coordinates()
		ci, best := 0, math.Inf(1)
		for j := range cc {
			c := cc[j].Center
			dr, dg, db := p[0]-c[0], p[1]-c[1], p[2]-c[2]
			if d := dr*dr + dg*dg + db*db; d < best {
				ci, best = j, d
			}
		}
		if labels[i] != ci {
			labels[i] = ci
			changed++
		}
	}
	return changed
}

// recenter moves every non-empty cluster to the mean of its members and
// returns the summed squared center movement. sums and counts are scratch
// space of len(cc).
func recenter(cc clusters.Clusters, points clusters.Observations, labels []int, sums [][3]float64, counts []int) float64 {
	clear(sums)
	clear(counts)
	for i, pt := range points {
		p := pt.Coordinates()
		s := &sums[labels[i]]
		s[0] += p[0]
		s[1] += p[1]
		s[2] += p[2]
		counts[labels[i]]++
	}

	var shift float64
	for j := range cc {
		if counts[j] == 0 {
			continue
		}
		n := float64(counts[j])
		center := clusters.Coordinates{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
		shift += cc[j].Center.Distance(center)
		cc[j].Center = center
	}
	return shift
}

// collect rebuilds the observation lists of cc from labels.
func collect(cc clusters.Clusters, points clusters.Observations, labels []int) {
	cc.Reset()
	for i, pt := range points {
		cc[labels[i]].Append(pt)
	}
}

// assign moves every observation to its nearest center, lowest index on
// ties, fills the observation lists and returns the total distortion.
func assign(cc clusters.Clusters, points clusters.Observations, labels []int) float64 {
	cc.Reset()
	dist := make([]float64, len(points))
	for i, pt := range points {
		ci := cc.Nearest(pt)
		labels[i] = ci
		cc[ci].Append(pt)
		dist[i] = pt.Distance(cc[ci].Center)
	}
	return floats.Sum(dist)
}

// varianceTolerance scales tol by the mean per-channel variance of points,
// so the stop test does not depend on how spread out the colours are. A
// negative tol is passed through.
func varianceTolerance(points clusters.Observations, tol float64) float64 {
	if tol <= 0 {
		return tol
	}
	var vars [3]float64
	channel := make([]float64, len(points))
	for c := range vars {
		for i, pt := range points {
			channel[i] = pt.Coordinates()[c]
		}
		_, vars[c] = stat.PopMeanVariance(channel, nil)
	}
	return tol * stat.Mean(vars[:], nil)
}

// seedCenters picks up to k initial centers with k-means++. It stops early
// once every observation coincides with a chosen center, so no two centers
// start on the same colour.
func seedCenters(points clusters.Observations, k int, rng *rand.Rand) clusters.Clusters {
	cc := make(clusters.Clusters, 0, k)
	first := points[rng.IntN(len(points))].Coordinates()
	cc = append(cc, clusters.Cluster{Center: first})

	d2 := make([]float64, len(points))
	for i, pt := range points {
		d2[i] = pt.Distance(first)
	}

	for len(cc) < k {
		total := floats.Sum(d2)
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		pick := -1
		for i, d := range d2 {
			if d == 0 {
				continue
			}
			pick = i
			if target -= d; target < 0 {
				break
			}
		}

		center := points[pick].Coordinates()
		cc = append(cc, clusters.Cluster{Center: center})
		for i, pt := range points {
			d2[i] = min(d2[i], pt.Distance(center))
		}
	}
	return cc
}
