package stats

import (
	"math"
	"testing"
)

func TestPointsLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1, "очко"},
		{2, "очка"},
		{4, "очка"},
		{5, "очков"},
		{10, "очков"},
		{11, "очков"},
		{14, "очков"},
		{19, "очков"},
		{21, "очко"},
		{22, "очка"},
		{25, "очков"},
		{100, "очков"},
		{101, "очко"},
		{111, "очков"},
		{121, "очко"},
		{0, "очков"},
		{-1, "очко"},
		{-12, "очков"},
	}
	for _, tc := range cases {
		if got := PointsLabel(tc.score); got != tc.want {
			t.Errorf("PointsLabel(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{2.0, "2.0 с"},
		{2.55, "2.5 с"},
		{99.99, "100.0 с"},
		{100, "100 с"},
		{123.4, "123 с"},
		{0, "0.0 с"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
	if got := FormatSeconds(math.NaN()); got != Dash {
		t.Errorf("FormatSeconds(NaN) = %q, want dash", got)
	}
	if got := FormatOptionalSeconds(0, false); got != Dash {
		t.Errorf("FormatOptionalSeconds(_, false) = %q, want dash", got)
	}
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{3, "3"},
		{2.5, "2.5"},
		{0.125, "0.125"},
		{0, "0"},
		{-2, "-2"},
	}
	for _, tc := range cases {
		if got := FormatScore(tc.score); got != tc.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestFormatPoints(t *testing.T) {
	if got := FormatPoints(21); got != "21 очко" {
		t.Fatalf("FormatPoints(21) = %q", got)
	}
	if got := FormatPoints(2.5); got != "2.5 очка" {
		t.Fatalf("FormatPoints(2.5) = %q", got)
	}
}
