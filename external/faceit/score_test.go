package faceit

import (
	"testing"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundStatsDoc(teams ...map[string]any) Payload {
	rawTeams := make([]any, 0, len(teams))
	for _, team := range teams {
		rawTeams = append(rawTeams, team)
	}
	return Payload{"rounds": []any{map[string]any{"teams": rawTeams}}}
}

func TestResolveScore_RoundStatsBeatLowDetailedResults(t *testing.T) {
	t.Parallel()

	matchDoc := Payload{
		"results": map[string]any{"winner": "faction1"},
		"detailed_results": []any{
			map[string]any{"factions": map[string]any{
				"faction1": map[string]any{"score": 1},
				"faction2": map[string]any{"score": 0},
			}},
		},
	}
	statsDoc := roundStatsDoc(
		map[string]any{"team_id": "faction1", "team_stats": map[string]any{"Final Score": "16"}},
		map[string]any{"team_id": "faction2", "team_stats": map[string]any{"Final Score": "10"}},
	)

	score, source := resolveScore(newScoreInput(matchDoc, statsDoc))
	assert.Equal(t, factionScore{faction1: 16, faction2: 10}, score)
	assert.Equal(t, "round_team_stats", source)
}

func TestResolveScore_DetailedResultsFloorFallsThroughToUnknown(t *testing.T) {
	t.Parallel()

	matchDoc := Payload{
		"detailed_results": []any{
			map[string]any{"factions": map[string]any{
				"faction1": map[string]any{"score": 1},
				"faction2": map[string]any{"score": 0},
			}},
		},
	}

	in := newScoreInput(matchDoc, nil)
	score, source := resolveScore(in)
	assert.Equal(t, factionScore{}, score)
	assert.Empty(t, source)
	assert.Equal(t, match.OutcomeUnknown, outcomeFor(match.Faction1, score, in.winner))
}

func TestResolveScore_UnknownEvenWithRecordedWinner(t *testing.T) {
	t.Parallel()

	in := newScoreInput(Payload{"results": map[string]any{"winner": "faction2"}}, nil)
	score, _ := resolveScore(in)
	assert.Equal(t, match.OutcomeUnknown, outcomeFor(match.Faction2, score, in.winner))
}

func TestResolveScore_CombinedStringSwapsToWinner(t *testing.T) {
	t.Parallel()

	matchDoc := Payload{"results": map[string]any{"winner": "faction2"}}
	statsDoc := Payload{"rounds": []any{map[string]any{"round_stats": map[string]any{"Score": "13 / 7"}}}}

	score, source := resolveScore(newScoreInput(matchDoc, statsDoc))
	assert.Equal(t, "round_combined_score", source)
	assert.Equal(t, factionScore{faction1: 7, faction2: 13}, score)
}

func TestResolveScore_CountsRoundWinners(t *testing.T) {
	t.Parallel()

	statsDoc := Payload{"rounds": []any{
		map[string]any{"winner": "faction1"},
		map[string]any{"winner": "faction2"},
		map[string]any{"winner": "faction1"},
	}}

	score, source := resolveScore(newScoreInput(Payload{}, statsDoc))
	assert.Equal(t, "rounds_won", source)
	assert.Equal(t, factionScore{faction1: 2, faction2: 1}, score)
}

func TestResolveScore_MatchPayloadFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		doc    Payload
		want   factionScore
		source string
	}{
		{
			name: "detailed results",
			doc: Payload{"detailed_results": []any{map[string]any{"factions": map[string]any{
				"faction1": map[string]any{"score": 16},
				"faction2": map[string]any{"score": 14},
			}}}},
			want:   factionScore{faction1: 16, faction2: 14},
			source: "detailed_results",
		},
		{
			name:   "results score map",
			doc:    Payload{"results": map[string]any{"score": map[string]any{"faction1": 9, "faction2": 13}}},
			want:   factionScore{faction1: 9, faction2: 13},
			source: "results_score",
		},
		{
			name: "team stats",
			doc: Payload{"teams": map[string]any{
				"faction1": map[string]any{"stats": map[string]any{"Score": "13"}},
				"faction2": map[string]any{"stats": map[string]any{"score": 4}},
			}},
			want:   factionScore{faction1: 13, faction2: 4},
			source: "team_stats",
		},
		{
			name: "results faction objects",
			doc: Payload{"results": map[string]any{
				"faction1": map[string]any{"score": 2},
				"faction2": map[string]any{"Score": 0},
			}},
			want:   factionScore{faction1: 2, faction2: 0},
			source: "results_faction",
		},
		{
			name:   "results score any magnitude",
			doc:    Payload{"results": map[string]any{"score": map[string]any{"faction1": 1, "faction2": 0}}},
			want:   factionScore{faction1: 1, faction2: 0},
			source: "results_score_any",
		},
	}
	for _, tc := range cases {
		score, source := resolveScore(newScoreInput(tc.doc, nil))
		if score != tc.want || source != tc.source {
			t.Fatalf("%s: got %+v via %q, want %+v via %q", tc.name, score, source, tc.want, tc.source)
		}
	}
}

func TestStatsTeamFaction_MatchesFactionIDs(t *testing.T) {
	t.Parallel()

	matchDoc := Payload{"teams": map[string]any{
		"faction1": map[string]any{"faction_id": "team-a"},
		"faction2": map[string]any{"faction_id": "team-b"},
	}}
	statsDoc := roundStatsDoc(
		map[string]any{"team_id": "team-b", "team_stats": map[string]any{"Final Score": 8}},
		map[string]any{"team_id": "team-a", "team_stats": map[string]any{"Final Score": 13}},
	)

	score, _ := resolveScore(newScoreInput(matchDoc, statsDoc))
	assert.Equal(t, factionScore{faction1: 13, faction2: 8}, score)
}

func TestOutcomeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, match.OutcomeWin, outcomeFor(match.Faction1, factionScore{faction1: 13, faction2: 5}, ""))
	assert.Equal(t, match.OutcomeLoss, outcomeFor(match.Faction2, factionScore{faction1: 13, faction2: 5}, ""))
	assert.Equal(t, match.OutcomeWin, outcomeFor(match.Faction2, factionScore{faction1: 13, faction2: 5}, match.Faction2))
	assert.Equal(t, match.OutcomeUnknown, outcomeFor(match.Faction1, factionScore{faction1: 12, faction2: 12}, ""))
}

func TestInspectScoreCascade_ReportsEveryStrategy(t *testing.T) {
	t.Parallel()

	attempts := inspectScoreCascade(newScoreInput(Payload{"results": map[string]any{"score": map[string]any{"faction1": 16, "faction2": 3}}}, nil))
	require.Len(t, attempts, len(scoreCascade))
	assert.Equal(t, "round_team_stats", attempts[0].Strategy)
	assert.False(t, attempts[0].Definite)
	assert.Equal(t, "results_score", attempts[4].Strategy)
	assert.True(t, attempts[4].Definite)
	assert.Equal(t, 16, attempts[4].Faction1)
}
