package util

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/pressgen/pkg/api"
)

func rec(id, title string) api.Record {
	return api.Record{ID: id, Generated: api.Generated{Title: title}}
}

func TestMatchRecords(t *testing.T) {
	recs := []api.Record{
		rec("1", "Spring Sale Event"),
		rec("2", "New Speaker Launch"),
		rec("3", "Winter Clearance"),
	}
	got := MatchRecords("spkr", recs, 0)
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	require.Empty(t, MatchRecords("zzz", recs, 0))
	require.Len(t, MatchRecords("", recs, 2), 2)
}

func TestScoreCompletions(t *testing.T) {
	cands := []string{"alpha", "beta", "alphabet"}
	require.Equal(t, cands, ScoreCompletions("", cands, 1))
	got := ScoreCompletions("alp", cands, 1)
	require.Len(t, got, 1)
	require.Contains(t, []string{"alpha", "alphabet"}, got[0])
}
