package faceit

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
)

const unknownRegion = "unknown"

var (
	kdKeys        = []string{"Average K/D Ratio", "Average K/D", "K/D Ratio"}
	kprKeys       = []string{"Average K/R Ratio", "Average K/R", "K/R Ratio"}
	headshotKeys  = []string{"Average Headshots %", "Headshots %"}
	highestEloKey = []string{"Highest ELO", "Highest Elo"}
	lowestEloKey  = []string{"Lowest ELO", "Lowest Elo"}
	avgEloKey     = []string{"Average ELO", "Average Elo"}
)

func searchHits(doc Payload) []player.SearchHit {
	items := getSlice(doc, "items")
	out := make([]player.SearchHit, 0, len(items))
	for _, raw := range items {
		item := asMap(raw)
		id := getString(item, "player_id", "id")
		if id == "" {
			continue
		}
		out = append(out, player.SearchHit{ID: id, Nickname: getString(item, "nickname")})
	}
	return out
}

func accountFromPlayer(doc Payload, game string) player.Account {
	gameDoc := getMap(getMap(doc, "games"), game)
	return player.Account{
		ID:         getString(doc, "player_id", "id"),
		Nickname:   getString(doc, "nickname"),
		AvatarURL:  getString(doc, "avatar"),
		Country:    getString(doc, "country"),
		SkillLevel: numInt(firstPresent(lookup(gameDoc, "skill_level"), lookup(doc, "skill_level", "level"))),
		Elo:        numInt(firstPresent(lookup(gameDoc, "faceit_elo"), lookup(doc, "faceit_elo"))),
	}
}

func lifetimeFromStats(doc Payload) player.Lifetime {
	stats := getMap(doc, "lifetime")
	kills := numInt(lookup(stats, "Kills", "Total Kills"))
	rounds := num(lookup(stats, "Rounds", "Total Rounds"), 0)

	kpr := num(lookup(stats, kprKeys...), 0)
	if kpr == 0 && rounds > 0 {
		kpr = round2(float64(kills) / rounds)
	}

	return player.Lifetime{
		KDRatio:         num(lookup(stats, kdKeys...), 0),
		KPR:             kpr,
		WinRatePercent:  num(lookup(stats, "Win Rate %"), 0),
		MatchesPlayed:   numInt(lookup(stats, "Matches")),
		HeadshotPercent: num(lookup(stats, headshotKeys...), 0),
		Kills:           kills,
		Deaths:          numInt(lookup(stats, "Deaths", "Total Deaths")),
		Wins:            numInt(lookup(stats, "Wins")),
		Losses:          numInt(lookup(stats, "Losses")),
		HighestElo:      numInt(lookup(stats, highestEloKey...)),
		LowestElo:       numInt(lookup(stats, lowestEloKey...)),
		AvgElo:          numInt(lookup(stats, avgEloKey...)),
		FARating:        num(lookup(stats, "FA Rating", "Average FA Rating"), 0),
		HLTVRating:      num(lookup(stats, "HLTV Rating", "Average HLTV Rating"), 0),
		Maps:            mapStats(doc),
	}
}

func mapStats(doc Payload) []player.MapStat {
	segments := getSlice(doc, "segments")
	out := make([]player.MapStat, 0, len(segments))
	for _, raw := range segments {
		segment := asMap(raw)
		if kind := getString(segment, "type"); kind != "" && !strings.EqualFold(kind, "map") {
			continue
		}
		stats := getMap(segment, "stats")
		out = append(out, player.MapStat{
			Map:            firstNonEmpty(getString(segment, "label"), getString(segment, "mode"), "Unknown"),
			WinRatePercent: num(lookup(stats, "Win Rate %"), 0),
			KDRatio:        num(lookup(stats, kdKeys...), 0),
			MatchesPlayed:  numInt(lookup(stats, "Matches")),
		})
	}
	return out
}

func historyPage(doc Payload, playerID string, now time.Time) match.HistoryPage {
	items := getSlice(doc, "items")
	out := match.HistoryPage{Items: make([]match.Summary, 0, len(items))}
	for _, raw := range items {
		item := asMap(raw)
		if getString(item, "match_id") == "" {
			continue
		}
		out.Items = append(out.Items, historySummary(item, playerID, now))
	}

	out.Total = len(out.Items)
	if total, ok := doc["total"]; ok && total != nil {
		out.Total = numInt(total)
	}
	return out
}

func historySummary(item Payload, playerID string, now time.Time) match.Summary {
	teams := getMap(item, "teams")
	team := ""
	for _, key := range []string{match.Faction1, match.Faction2} {
		side := getMap(teams, key)
		if sideHoldsPlayer(side, playerID) {
			team = firstNonEmpty(getString(side, "nickname", "name"), key)
			break
		}
	}

	return match.Summary{
		MatchID:  getString(item, "match_id"),
		Game:     getString(item, "game_id", "game"),
		PlayedAt: toMillis(lookup(item, "played_at", "started_at", "finished_at"), now),
		Region:   firstNonEmpty(getString(item, "region"), unknownRegion),
		Map:      mapName(item),
		Team:     team,
	}
}

func sideHoldsPlayer(side map[string]any, playerID string) bool {
	for _, raw := range rosterEntries(side) {
		if getString(asMap(raw), "player_id", "id") == playerID {
			return true
		}
	}
	return false
}

func rosterEntries(side map[string]any) []any {
	if entries := getSlice(side, "roster"); len(entries) > 0 {
		return entries
	}
	return getSlice(side, "players")
}

// rosterFromMatch reads both faction rosters. ok is false unless both sides exist.
func rosterFromMatch(doc Payload) (match.Roster, bool) {
	teams := getMap(doc, "teams")
	out := match.Roster{MatchID: getString(doc, "match_id")}
	for _, key := range []string{match.Faction1, match.Faction2} {
		side := getMap(teams, key)
		if side == nil {
			return match.Roster{}, false
		}
		for _, raw := range rosterEntries(side) {
			entry := asMap(raw)
			id := getString(entry, "player_id", "id")
			if id == "" {
				continue
			}
			out.Members = append(out.Members, match.RosterMember{
				ID:       id,
				Nickname: getString(entry, "nickname", "game_player_name"),
				Faction:  key,
			})
		}
	}
	return out, true
}

type lineStats struct {
	kills     int
	deaths    int
	headshots int
}

func (s lineStats) present() bool {
	return s.kills > 0 || s.deaths > 0
}

func lineStatsFrom(src map[string]any) lineStats {
	return lineStats{
		kills:     numInt(lookupFold(src, "Kills")),
		deaths:    numInt(lookupFold(src, "Deaths")),
		headshots: numInt(lookupFold(src, "Headshots", "Headshot")),
	}
}

// playerLineStats reads kills, deaths and headshots for one player from the
// stats rounds, then the roster's player_stats, then a flat players list.
func playerLineStats(matchDoc, statsDoc Payload, playerID string) lineStats {
	tiers := []func() lineStats{
		func() lineStats { return statsRoundLine(statsDoc, playerID) },
		func() lineStats { return rosterLine(matchDoc, playerID) },
		func() lineStats { return flatPlayerLine(matchDoc, playerID) },
	}
	for _, tier := range tiers {
		if stats := tier(); stats.present() {
			return stats
		}
	}
	return lineStats{}
}

func statsRoundLine(statsDoc Payload, playerID string) lineStats {
	for _, rawRound := range getSlice(statsDoc, "rounds") {
		for _, rawTeam := range getSlice(asMap(rawRound), "teams") {
			for _, rawPlayer := range getSlice(asMap(rawTeam), "players") {
				entry := asMap(rawPlayer)
				if getString(entry, "player_id") == playerID {
					return lineStatsFrom(getMap(entry, "player_stats"))
				}
			}
		}
	}
	return lineStats{}
}

func rosterLine(matchDoc Payload, playerID string) lineStats {
	teams := getMap(matchDoc, "teams")
	for _, key := range []string{match.Faction1, match.Faction2} {
		for _, raw := range rosterEntries(getMap(teams, key)) {
			entry := asMap(raw)
			if getString(entry, "player_id", "id") == playerID {
				return lineStatsFrom(getMap(entry, "player_stats"))
			}
		}
	}
	return lineStats{}
}

func flatPlayerLine(matchDoc Payload, playerID string) lineStats {
	for _, raw := range getSlice(matchDoc, "players") {
		entry := asMap(raw)
		if getString(entry, "player_id", "id") != playerID {
			continue
		}
		if nested := getMap(entry, "player_stats"); nested != nil {
			return lineStatsFrom(nested)
		}
		return lineStatsFrom(entry)
	}
	return lineStats{}
}

// detailedSummary builds the player's view of one match. ok is false when the
// player is not on either roster.
func detailedSummary(matchDoc, statsDoc Payload, playerID string, now time.Time) (match.DetailedSummary, bool) {
	roster, _ := rosterFromMatch(matchDoc)
	faction, found := roster.FactionOf(playerID)
	if !found {
		return match.DetailedSummary{}, false
	}

	in := newScoreInput(matchDoc, statsDoc)
	score, _ := resolveScore(in)
	scoreFor, scoreAgainst := scoreForFaction(faction, score)
	line := playerLineStats(matchDoc, statsDoc, playerID)

	return match.DetailedSummary{
		Summary:      matchSummary(matchDoc, faction, now),
		Result:       outcomeFor(faction, score, in.winner),
		Kills:        line.kills,
		Deaths:       line.deaths,
		Headshots:    line.headshots,
		KD:           kdRatio(line.kills, line.deaths),
		ScoreFor:     scoreFor,
		ScoreAgainst: scoreAgainst,
	}, true
}

func matchSummary(matchDoc Payload, faction string, now time.Time) match.Summary {
	side := getMap(getMap(matchDoc, "teams"), faction)
	return match.Summary{
		MatchID:  getString(matchDoc, "match_id"),
		Game:     getString(matchDoc, "game", "game_id"),
		PlayedAt: toMillis(lookup(matchDoc, "started_at", "date", "finished_at"), now),
		Region:   firstNonEmpty(getString(matchDoc, "region"), unknownRegion),
		Map:      mapName(matchDoc),
		Team:     firstNonEmpty(getString(side, "name", "nickname"), faction),
	}
}

func matchDetail(matchDoc, statsDoc Payload, now time.Time) match.Detail {
	in := newScoreInput(matchDoc, statsDoc)
	score, _ := resolveScore(in)

	winner := in.winner
	if winner == "" {
		winner = inferWinner(score)
	}

	teams := getMap(matchDoc, "teams")
	board := match.Scoreboard{}
	for idx, key := range []string{match.Faction1, match.Faction2} {
		side := getMap(teams, key)
		sideScore, _ := scoreForFaction(key, score)
		board[idx] = match.Side{
			Faction: key,
			Name:    firstNonEmpty(getString(side, "name", "nickname"), key),
			Score:   sideScore,
			Players: sidePlayers(matchDoc, statsDoc, key),
		}
	}

	return match.Detail{
		MatchID:      getString(matchDoc, "match_id"),
		Game:         getString(matchDoc, "game", "game_id"),
		Map:          mapName(matchDoc),
		StartedAt:    toMillis(lookup(matchDoc, "started_at"), now),
		FinishedAt:   toMillis(lookup(matchDoc, "finished_at"), now),
		Region:       firstNonEmpty(getString(matchDoc, "region"), unknownRegion),
		Scoreboard:   board,
		Winner:       winner,
		ScoreFor:     score.faction1,
		ScoreAgainst: score.faction2,
	}
}

// sidePlayers prefers the stats payload's player list and falls back to the roster.
func sidePlayers(matchDoc, statsDoc Payload, faction string) []match.PlayerLine {
	rosterByID := map[string]map[string]any{}
	rosterOrder := []string{}
	for _, raw := range rosterEntries(getMap(getMap(matchDoc, "teams"), faction)) {
		entry := asMap(raw)
		id := getString(entry, "player_id", "id")
		if id == "" {
			continue
		}
		rosterByID[id] = entry
		rosterOrder = append(rosterOrder, id)
	}

	out := []match.PlayerLine{}
	if rounds := getSlice(statsDoc, "rounds"); len(rounds) > 0 {
		for idx, rawTeam := range getSlice(asMap(rounds[0]), "teams") {
			team := asMap(rawTeam)
			if statsTeamFaction(matchDoc, team, idx) != faction {
				continue
			}
			for _, rawPlayer := range getSlice(team, "players") {
				entry := asMap(rawPlayer)
				id := getString(entry, "player_id")
				out = append(out, playerLine(id, firstNonEmpty(getString(entry, "nickname"), getString(rosterByID[id], "nickname")),
					lineStatsFrom(getMap(entry, "player_stats")), rosterByID[id]))
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, id := range rosterOrder {
		entry := rosterByID[id]
		out = append(out, playerLine(id, getString(entry, "nickname"), lineStatsFrom(getMap(entry, "player_stats")), entry))
	}
	return out
}

func playerLine(id, nickname string, stats lineStats, rosterEntry map[string]any) match.PlayerLine {
	return match.PlayerLine{
		ID:        id,
		Nickname:  nickname,
		Kills:     stats.kills,
		Deaths:    stats.deaths,
		Headshots: stats.headshots,
		KD:        kdRatio(stats.kills, stats.deaths),
		AvatarURL: getString(rosterEntry, "avatar"),
		Level:     numInt(lookup(rosterEntry, "game_skill_level", "skill_level")),
	}
}

func scoreInspection(matchID string, matchDoc, statsDoc Payload) match.ScoreInspection {
	in := newScoreInput(matchDoc, statsDoc)
	score, source := resolveScore(in)
	return match.ScoreInspection{
		MatchID:        firstNonEmpty(getString(matchDoc, "match_id"), matchID),
		Status:         getString(matchDoc, "status"),
		Winner:         in.winner,
		Source:         source,
		Faction1:       score.faction1,
		Faction2:       score.faction2,
		StatsAvailable: statsDoc != nil,
		RoundsCount:    len(getSlice(statsDoc, "rounds")),
		MatchKeys:      payloadKeys(matchDoc),
		StatsKeys:      payloadKeys(statsDoc),
		Candidates:     inspectScoreCascade(in),
	}
}

// payloadKeys lists top-level keys in sorted order.
func payloadKeys(doc Payload) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func firstPresent(values ...any) any {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}
