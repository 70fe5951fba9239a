package util

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/pressgen/pkg/api"
)

// ScoreCompletions returns the top N matches for the input string from the candidates list.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

type recordTitles []api.Record

func (r recordTitles) String(i int) string { return r[i].Generated.Title }
func (r recordTitles) Len() int            { return len(r) }

// MatchRecords ranks records by fuzzy match of query against their titles and
// returns at most n (all when n <= 0).
func MatchRecords(query string, recs []api.Record, n int) []api.Record {
	if query == "" {
		if n > 0 && len(recs) > n {
			return recs[:n]
		}
		return recs
	}
	matches := fuzzy.FindFrom(query, recordTitles(recs))
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	out := make([]api.Record, len(matches))
	for i, m := range matches {
		out[i] = recs[m.Index]
	}
	return out
}
