package faceit

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
)

var combinedScoreRegex = regexp.MustCompile(`(\d+)\s*[-/:]\s*(\d+)`)

var (
	teamScoreKeys     = []string{"Score", "Final Score", "Rounds", "Rounds Won", "RoundsWon"}
	combinedScoreKeys = []string{"Score", "Result", "Final Score"}
)

type factionScore struct {
	faction1 int
	faction2 int
}

func (s factionScore) definite() bool {
	return s.faction1 > 0 || s.faction2 > 0
}

// scoreInput is the raw material the cascade reads. stats may be nil.
type scoreInput struct {
	match  map[string]any
	stats  map[string]any
	winner string
}

func newScoreInput(matchDoc, statsDoc map[string]any) scoreInput {
	return scoreInput{
		match:  matchDoc,
		stats:  statsDoc,
		winner: recordedWinner(matchDoc),
	}
}

// scoreStrategy inspects one place a score can live. ok=false means no opinion.
type scoreStrategy struct {
	name    string
	extract func(in scoreInput) (factionScore, bool)
}

// scoreCascade is ordered by trust. The first definite answer wins.
var scoreCascade = []scoreStrategy{
	{name: "round_team_stats", extract: scoreFromRoundTeamStats},
	{name: "round_combined_score", extract: scoreFromRoundCombined},
	{name: "rounds_won", extract: scoreFromRoundsWon},
	{name: "detailed_results", extract: scoreFromDetailedResults},
	{name: "results_score", extract: scoreFromResultsScore},
	{name: "team_stats", extract: scoreFromTeamStats},
	{name: "results_faction", extract: scoreFromResultsFaction},
	{name: "results_score_any", extract: scoreFromResultsScoreAny},
}

// resolveScore runs the cascade. source is "" when no strategy was definite.
func resolveScore(in scoreInput) (score factionScore, source string) {
	for _, strategy := range scoreCascade {
		candidate, ok := strategy.extract(in)
		if ok && candidate.definite() {
			return candidate, strategy.name
		}
	}
	return factionScore{}, ""
}

// inspectScoreCascade evaluates every strategy for diagnostics.
func inspectScoreCascade(in scoreInput) []match.ScoreAttempt {
	out := make([]match.ScoreAttempt, 0, len(scoreCascade))
	for _, strategy := range scoreCascade {
		candidate, ok := strategy.extract(in)
		out = append(out, match.ScoreAttempt{
			Strategy: strategy.name,
			Definite: ok && candidate.definite(),
			Faction1: candidate.faction1,
			Faction2: candidate.faction2,
		})
	}
	return out
}

func recordedWinner(matchDoc map[string]any) string {
	winner := getString(getMap(matchDoc, "results"), "winner")
	if winner == match.Faction1 || winner == match.Faction2 {
		return winner
	}
	return ""
}

func statsRounds(in scoreInput) []any {
	return getSlice(in.stats, "rounds")
}

func scoreFromRoundTeamStats(in scoreInput) (factionScore, bool) {
	rounds := statsRounds(in)
	if len(rounds) == 0 {
		return factionScore{}, false
	}

	var out factionScore
	for idx, rawTeam := range getSlice(asMap(rounds[0]), "teams") {
		team := asMap(rawTeam)
		parsed := firstDigits(lookupFold(getMap(team, "team_stats"), teamScoreKeys...))
		if parsed <= 0 {
			continue
		}
		switch statsTeamFaction(in.match, team, idx) {
		case match.Faction1:
			out.faction1 = parsed
		case match.Faction2:
			out.faction2 = parsed
		}
	}
	return out, out.definite()
}

// statsTeamFaction maps a stats team entry to a faction key, using its
// team_id, the match's faction ids, then its position.
func statsTeamFaction(matchDoc, team map[string]any, idx int) string {
	teamID := getString(team, "team_id")
	if teamID == match.Faction1 || teamID == match.Faction2 {
		return teamID
	}
	if teamID != "" {
		teams := getMap(matchDoc, "teams")
		for _, key := range []string{match.Faction1, match.Faction2} {
			if getString(getMap(teams, key), "faction_id", "team_id") == teamID {
				return key
			}
		}
	}
	switch idx {
	case 0:
		return match.Faction1
	case 1:
		return match.Faction2
	default:
		return ""
	}
}

func scoreFromRoundCombined(in scoreInput) (factionScore, bool) {
	rounds := statsRounds(in)
	if len(rounds) == 0 {
		return factionScore{}, false
	}
	raw, ok := lookupFold(getMap(asMap(rounds[0]), "round_stats"), combinedScoreKeys...).(string)
	if !ok {
		return factionScore{}, false
	}
	groups := combinedScoreRegex.FindStringSubmatch(raw)
	if len(groups) != 3 {
		return factionScore{}, false
	}
	a, _ := strconv.Atoi(groups[1])
	b, _ := strconv.Atoi(groups[2])

	// The pair is recorded in a fixed position; the winner must hold the larger number.
	if (in.winner == match.Faction1 && a < b) || (in.winner == match.Faction2 && b < a) {
		a, b = b, a
	}
	out := factionScore{faction1: a, faction2: b}
	return out, out.definite()
}

func scoreFromRoundsWon(in scoreInput) (factionScore, bool) {
	rounds := statsRounds(in)
	if len(rounds) <= 1 {
		return factionScore{}, false
	}
	var out factionScore
	for _, raw := range rounds {
		switch getString(asMap(raw), "winner") {
		case match.Faction1:
			out.faction1++
		case match.Faction2:
			out.faction2++
		}
	}
	return out, out.definite()
}

// scoreFromDetailedResults requires a side above 1 so a 1:0 "first half" or
// side-pick flag is not read as a score.
func scoreFromDetailedResults(in scoreInput) (factionScore, bool) {
	for _, raw := range getSlice(in.match, "detailed_results") {
		factions := getMap(asMap(raw), "factions")
		first, second, ok := factionPair(factions)
		if !ok {
			continue
		}
		out := factionScore{
			faction1: numInt(lookup(asMap(first), "score")),
			faction2: numInt(lookup(asMap(second), "score")),
		}
		if out.faction1 > 1 || out.faction2 > 1 {
			return out, true
		}
	}
	return factionScore{}, false
}

func scoreFromResultsScore(in scoreInput) (factionScore, bool) {
	scores := getMap(getMap(in.match, "results"), "score")
	first, second, ok := factionPair(scores)
	if !ok {
		return factionScore{}, false
	}
	exceeds := false
	for _, value := range scores {
		if num(value, 0) > 1 {
			exceeds = true
			break
		}
	}
	if !exceeds {
		return factionScore{}, false
	}
	return factionScore{faction1: numInt(first), faction2: numInt(second)}, true
}

func scoreFromTeamStats(in scoreInput) (factionScore, bool) {
	teams := getMap(in.match, "teams")
	out := factionScore{
		faction1: numInt(lookup(getMap(getMap(teams, match.Faction1), "stats"), "Score", "score")),
		faction2: numInt(lookup(getMap(getMap(teams, match.Faction2), "stats"), "Score", "score")),
	}
	return out, out.definite()
}

func scoreFromResultsFaction(in scoreInput) (factionScore, bool) {
	results := getMap(in.match, "results")
	out := factionScore{
		faction1: numInt(lookup(getMap(results, match.Faction1), "score", "Score")),
		faction2: numInt(lookup(getMap(results, match.Faction2), "score", "Score")),
	}
	return out, out.definite()
}

func scoreFromResultsScoreAny(in scoreInput) (factionScore, bool) {
	first, second, ok := factionPair(getMap(getMap(in.match, "results"), "score"))
	if !ok {
		return factionScore{}, false
	}
	out := factionScore{faction1: numInt(first), faction2: numInt(second)}
	return out, out.definite()
}

// factionPair returns the faction1/faction2 entries of a two-sided map. Maps
// keyed otherwise fall back to sorted key order.
func factionPair(src map[string]any) (first, second any, ok bool) {
	if len(src) < 2 {
		return nil, nil, false
	}
	first, hasFirst := src[match.Faction1]
	second, hasSecond := src[match.Faction2]
	if hasFirst && hasSecond {
		return first, second, true
	}

	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return src[keys[0]], src[keys[1]], true
}

// outcomeFor derives the player's result. An unresolved score is always unknown.
func outcomeFor(playerFaction string, score factionScore, recorded string) match.Outcome {
	if !score.definite() {
		return match.OutcomeUnknown
	}
	winner := recorded
	if winner == "" {
		winner = inferWinner(score)
	}
	switch {
	case winner == "":
		return match.OutcomeUnknown
	case winner == playerFaction:
		return match.OutcomeWin
	default:
		return match.OutcomeLoss
	}
}

func inferWinner(score factionScore) string {
	switch {
	case score.faction1 > score.faction2:
		return match.Faction1
	case score.faction2 > score.faction1:
		return match.Faction2
	default:
		return ""
	}
}

func scoreForFaction(faction string, score factionScore) (scoreFor, scoreAgainst int) {
	if faction == match.Faction2 {
		return score.faction2, score.faction1
	}
	return score.faction1, score.faction2
}
