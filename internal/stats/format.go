package stats

import (
	"math"
	"strconv"
)

// Dash is the placeholder for missing or non-finite values.
const Dash = "—"

// SecondsUnit suffixes formatted response times.
const SecondsUnit = " с"

// FormatSeconds renders a response time for display: no decimals from 100
// seconds up, one decimal below that.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Dash
	}
	if seconds >= 100 {
		return strconv.FormatFloat(seconds, 'f', 0, 64) + SecondsUnit
	}
	return strconv.FormatFloat(seconds, 'f', 1, 64) + SecondsUnit
}

// FormatOptionalSeconds renders a value that may be absent.
func FormatOptionalSeconds(seconds float64, ok bool) string {
	if !ok {
		return Dash
	}
	return FormatSeconds(seconds)
}

// FormatScore renders a score without trailing zeros: 3, 2.5, 0.125.
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Dash
	}
	if math.Abs(score-math.Round(score)) < 1e-9 {
		return strconv.FormatInt(int64(math.Round(score)), 10)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// PointsLabel picks the Russian grammatical form for a point count:
// 1 очко, 2 очка, 5 очков, 11 очков, 21 очко. The branching is load-bearing
// for locale correctness and must not be simplified.
func PointsLabel(score float64) string {
	n := int64(math.Round(math.Abs(score)))
	abs := n % 100
	last := abs % 10
	switch {
	case abs > 10 && abs < 20:
		return "очков"
	case last == 1:
		return "очко"
	case last >= 2 && last <= 4:
		return "очка"
	default:
		return "очков"
	}
}

// FormatPoints renders a score with its point label: "21 очко".
func FormatPoints(score float64) string {
	return FormatScore(score) + " " + PointsLabel(score)
}
