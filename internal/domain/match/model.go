package match

// Outcome is the result of a match from the queried player's side.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeUnknown Outcome = "unknown"
)

// Faction keys used by the upstream for the two competing sides.
const (
	Faction1 = "faction1"
	Faction2 = "faction2"
)

// Summary is one entry of a player's match history.
type Summary struct {
	MatchID  string `json:"matchId"`
	Game     string `json:"game"`
	PlayedAt int64  `json:"playedAt"`
	Region   string `json:"region"`
	Map      string `json:"map"`
	Team     string `json:"team"`
}

type HistoryPage struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
}

// DetailedSummary is a history entry expanded with the player's own line and the score.
type DetailedSummary struct {
	Summary
	Result       Outcome `json:"result"`
	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`
	Headshots    int     `json:"headshots"`
	KD           float64 `json:"kd"`
	ScoreFor     int     `json:"scoreFor"`
	ScoreAgainst int     `json:"scoreAgainst"`
}

type DetailedPage struct {
	Items []DetailedSummary `json:"items"`
	Total int               `json:"total"`
}

type PlayerLine struct {
	ID        string  `json:"id"`
	Nickname  string  `json:"nickname"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Headshots int     `json:"hs"`
	KD        float64 `json:"kd"`
	AvatarURL string  `json:"avatarUrl"`
	Level     int     `json:"level"`
}

type Side struct {
	Faction string       `json:"faction"`
	Name    string       `json:"name"`
	Score   int          `json:"score"`
	Players []PlayerLine `json:"players"`
}

// Scoreboard always holds faction1 then faction2.
type Scoreboard [2]Side

// Detail is the single-match view. Winner is a faction key or "" when unknown.
type Detail struct {
	MatchID      string     `json:"matchId"`
	Game         string     `json:"game"`
	Map          string     `json:"map"`
	StartedAt    int64      `json:"startedAt"`
	FinishedAt   int64      `json:"finishedAt"`
	Region       string     `json:"region"`
	Scoreboard   Scoreboard `json:"scoreboard"`
	Winner       string     `json:"winner"`
	ScoreFor     int        `json:"scoreFor"`
	ScoreAgainst int        `json:"scoreAgainst"`
}

// RosterMember is a player listed on one faction of a match.
type RosterMember struct {
	ID       string
	Nickname string
	Faction  string
}

type Roster struct {
	MatchID string
	Members []RosterMember
}

// FactionOf returns the faction holding playerID.
func (r Roster) FactionOf(playerID string) (string, bool) {
	for _, m := range r.Members {
		if m.ID == playerID {
			return m.Faction, true
		}
	}
	return "", false
}

// ScoreInspection explains how a match score was resolved.
type ScoreInspection struct {
	MatchID        string         `json:"matchId"`
	Status         string         `json:"status"`
	Winner         string         `json:"winner"`
	Source         string         `json:"source"`
	Faction1       int            `json:"faction1"`
	Faction2       int            `json:"faction2"`
	StatsAvailable bool           `json:"statsAvailable"`
	RoundsCount    int            `json:"roundsCount"`
	MatchKeys      []string       `json:"matchKeys"`
	StatsKeys      []string       `json:"statsKeys"`
	Candidates     []ScoreAttempt `json:"candidates"`
}

// ScoreAttempt records what one extraction strategy produced.
type ScoreAttempt struct {
	Strategy string `json:"strategy"`
	Definite bool   `json:"definite"`
	Faction1 int    `json:"faction1"`
	Faction2 int    `json:"faction2"`
}
