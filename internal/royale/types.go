package royale

// ClanMember is one entry of a clan's member list.
type ClanMember struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Trophies int    `json:"trophies"`
}

// PlayerProfile holds the profile fields we keep from /players/{tag}.
type PlayerProfile struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	ExpLevel int    `json:"expLevel"`
	Trophies int    `json:"trophies"`
	Clan     struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	} `json:"clan"`
}

// Card is one catalog entry from /cards.
type Card struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	MaxLevel int    `json:"maxLevel"`
	IconURLs struct {
		Medium string `json:"medium"`
	} `json:"iconUrls"`
}

// BattleCard is a card slot inside a battle participant's deck.
type BattleCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	MaxLevel int    `json:"maxLevel"`
}

// Participant is one player's entry in a battle's team or opponent
// array.
type Participant struct {
	Tag              string       `json:"tag"`
	Name             string       `json:"name"`
	StartingTrophies int          `json:"startingTrophies"`
	Crowns           int          `json:"crowns"`
	Cards            []BattleCard `json:"cards"`
}

// Battle is one raw entry of a player's battle log, as fetched. It is
// never stored directly; the ingest package derives the canonical
// record from it.
type Battle struct {
	Type       string `json:"type"`
	BattleTime string `json:"battleTime"`
	Arena      struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"arena"`
	GameMode struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"gameMode"`
	Duration int           `json:"duration"` // seconds; 0 when absent
	Team     []Participant `json:"team"`
	Opponent []Participant `json:"opponent"`
}
