package effects

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
)

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Variance is the Bessel-corrected sample variance; 0 for fewer than two values.
func Variance(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	return stat.Variance(values, nil)
}

// PooledStd never returns 0: when neither group carries spread it falls back
// to 1 so effect sizes stay finite at small samples.
func PooledStd(a []float64, b []float64) float64 {
	if len(a) <= 1 && len(b) <= 1 {
		return 1
	}

	var weighted float64
	var freedom int
	for _, group := range [][]float64{a, b} {
		if len(group) <= 1 {
			continue
		}
		weighted += float64(len(group)-1) * Variance(group)
		freedom += len(group) - 1
	}
	if freedom == 0 {
		return 1
	}

	pooled := math.Sqrt(weighted / float64(freedom))
	if pooled == 0 || math.IsNaN(pooled) || math.IsInf(pooled, 0) {
		return 1
	}
	return pooled
}

// CohenD is positive when the on group sits above the off group.
func CohenD(onValues []float64, offValues []float64) float64 {
	if len(onValues) == 0 || len(offValues) == 0 {
		return 0
	}
	return (Mean(onValues) - Mean(offValues)) / PooledStd(onValues, offValues)
}

// BootstrapConfidence returns the share of resamples whose effect keeps the
// sign of the point estimate. It measures direction stability, not the
// precision of the magnitude. The generator is seeded from the inputs so
// identical groups always produce the same value.
func BootstrapConfidence(onValues []float64, offValues []float64, samples int) float64 {
	if len(onValues) == 0 || len(offValues) == 0 {
		return 0
	}
	point := CohenD(onValues, offValues)
	if point == 0 {
		return 0
	}
	if samples <= 0 {
		samples = DefaultBootstrapSamples
	}

	rng := rand.New(rand.NewPCG(resampleSeed(onValues, offValues)))
	onSample := make([]float64, len(onValues))
	offSample := make([]float64, len(offValues))

	matching := 0
	for i := 0; i < samples; i++ {
		resample(rng, onValues, onSample)
		resample(rng, offValues, offSample)
		if sameSign(CohenD(onSample, offSample), point) {
			matching++
		}
	}
	return float64(matching) / float64(samples)
}

// SimpleSlope is the least-squares slope of the series against 0..n-1.
func SimpleSlope(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	index := make([]float64, len(series))
	for i := range index {
		index[i] = float64(i)
	}
	_, slope := stat.LinearRegression(index, series, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return slope
}

type TrendShift struct {
	BeforeSlope float64 `json:"beforeSlope"`
	AfterSlope  float64 `json:"afterSlope"`
	SlopeChange float64 `json:"slopeChange"`
}

func TrendBreak(before []float64, after []float64) TrendShift {
	beforeSlope := SimpleSlope(before)
	afterSlope := SimpleSlope(after)
	return TrendShift{
		BeforeSlope: beforeSlope,
		AfterSlope:  afterSlope,
		SlopeChange: afterSlope - beforeSlope,
	}
}

func resample(rng *rand.Rand, source []float64, target []float64) {
	for i := range target {
		target[i] = source[rng.IntN(len(source))]
	}
}

func sameSign(value float64, reference float64) bool {
	return (value > 0 && reference > 0) || (value < 0 && reference < 0)
}

func resampleSeed(onValues []float64, offValues []float64) (uint64, uint64) {
	hasher := fnv.New64a()
	buffer := make([]byte, 8)
	write := func(values []float64) {
		binary.LittleEndian.PutUint64(buffer, uint64(len(values)))
		_, _ = hasher.Write(buffer)
		for _, value := range values {
			binary.LittleEndian.PutUint64(buffer, math.Float64bits(value))
			_, _ = hasher.Write(buffer)
		}
	}
	write(onValues)
	first := hasher.Sum64()
	write(offValues)
	return first, hasher.Sum64()
}
