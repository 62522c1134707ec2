// Package leaderboard turns unordered scoreboard entries into a ranked list
// for the results and final screens. It performs no rendering.
package leaderboard

import (
	"sort"
	"strconv"

	"quiz-screen/internal/stats"
)

// Row is one ranked leaderboard line. Badge is a medal glyph for the top
// three ranks and "{rank}." below that.
type Row struct {
	Rank  int
	Badge string
	Entry stats.BoardEntry
}

var medals = [...]string{"🥇", "🥈", "🥉"}

// Rank sorts entries by score descending, ties broken by total response
// time ascending; entries without a recorded time always rank after entries
// that have one and keep their relative order. The input is not mutated.
func Rank(entries []stats.BoardEntry) []Row {
	ordered := make([]stats.BoardEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	rows := make([]Row, 0, len(ordered))
	for i, entry := range ordered {
		rank := i + 1
		badge := strconv.Itoa(rank) + "."
		if rank <= len(medals) {
			badge = medals[rank-1]
		}
		rows = append(rows, Row{Rank: rank, Badge: badge, Entry: entry})
	}
	return rows
}

func less(a, b stats.BoardEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.HasTotal && b.HasTotal {
		return a.TotalResponseTime < b.TotalResponseTime
	}
	// Entries lacking a time rank after entries that have one.
	return a.HasTotal && !b.HasTotal
}
