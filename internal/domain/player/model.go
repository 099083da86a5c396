package player

// SearchHit is one entry of an upstream nickname search before enrichment.
type SearchHit struct {
	ID       string
	Nickname string
}

// Account carries identity fields of a player for a single game.
type Account struct {
	ID         string
	Nickname   string
	AvatarURL  string
	Country    string
	SkillLevel int
	Elo        int
}

// Lifetime holds aggregated statistics for a player in one game.
type Lifetime struct {
	KDRatio         float64
	KPR             float64
	WinRatePercent  float64
	MatchesPlayed   int
	HeadshotPercent float64
	Kills           int
	Deaths          int
	Wins            int
	Losses          int
	HighestElo      int
	LowestElo       int
	AvgElo          int
	FARating        float64
	HLTVRating      float64
	Maps            []MapStat
}

// Summary is the compact player view returned by search.
type Summary struct {
	ID              string  `json:"id"`
	Nickname        string  `json:"nickname"`
	AvatarURL       string  `json:"avatarUrl"`
	Country         string  `json:"country"`
	Level           int     `json:"level"`
	KDRatio         float64 `json:"kdRatio"`
	WinRatePercent  float64 `json:"winRatePercent"`
	MatchesPlayed   int     `json:"matchesPlayed"`
	HeadshotPercent float64 `json:"headshotPercent"`
}

// Profile extends Summary with rating and elo fields.
type Profile struct {
	Summary
	KPR        float64 `json:"kpr"`
	Kills      int     `json:"kills"`
	Deaths     int     `json:"deaths"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Elo        int     `json:"elo"`
	HighestElo int     `json:"highestElo"`
	LowestElo  int     `json:"lowestElo"`
	AvgElo     int     `json:"avgElo"`
	FARating   float64 `json:"faRating"`
	HLTV       float64 `json:"hltv"`
}

type MapStat struct {
	Map            string  `json:"map"`
	WinRatePercent float64 `json:"winRatePercent"`
	KDRatio        float64 `json:"kdRatio"`
	MatchesPlayed  int     `json:"matchesPlayed"`
}

// Teammate counts matches shared with the queried player.
type Teammate struct {
	ID              string `json:"id"`
	Nickname        string `json:"nickname"`
	MatchesTogether int    `json:"matchesTogether"`
}

// NewSummary merges account and lifetime data. Missing parts stay zero.
func NewSummary(hit SearchHit, account Account, lifetime Lifetime) Summary {
	nickname := account.Nickname
	if nickname == "" {
		nickname = hit.Nickname
	}
	id := account.ID
	if id == "" {
		id = hit.ID
	}
	return Summary{
		ID:              id,
		Nickname:        nickname,
		AvatarURL:       account.AvatarURL,
		Country:         account.Country,
		Level:           account.SkillLevel,
		KDRatio:         lifetime.KDRatio,
		WinRatePercent:  lifetime.WinRatePercent,
		MatchesPlayed:   lifetime.MatchesPlayed,
		HeadshotPercent: lifetime.HeadshotPercent,
	}
}

func NewProfile(account Account, lifetime Lifetime) Profile {
	return Profile{
		Summary:    NewSummary(SearchHit{ID: account.ID, Nickname: account.Nickname}, account, lifetime),
		KPR:        lifetime.KPR,
		Kills:      lifetime.Kills,
		Deaths:     lifetime.Deaths,
		Wins:       lifetime.Wins,
		Losses:     lifetime.Losses,
		Elo:        account.Elo,
		HighestElo: lifetime.HighestElo,
		LowestElo:  lifetime.LowestElo,
		AvgElo:     lifetime.AvgElo,
		FARating:   lifetime.FARating,
		HLTV:       lifetime.HLTVRating,
	}
}
