package domain

// PlannerDocument is one priced team composition as served to the planner
// view. Price is in the requested fiat currency with owned cards excluded.
type PlannerDocument struct {
	ID              string         `json:"id"`
	Updated         int64          `json:"updated"`
	Battles         int            `json:"battles"`
	Wins            int            `json:"wins"`
	WinPc           float64        `json:"winpc"`
	Mana            int            `json:"mana"`
	MonsterCount    int            `json:"monsterCount"`
	Monsters        []DocumentCard `json:"monsters"`
	Owned           string         `json:"owned"`
	Price           float64        `json:"price"`
	FiatSymbol      string         `json:"fiatSymbol"`
	Splinter        string         `json:"splinter"`
	SplinterIcon    string         `json:"splinterIcon"`
	SummonerName    string         `json:"summonerName"`
	SummonerIcon    string         `json:"summonerIcon"`
	SummonerCard    string         `json:"summonerCardImg"`
	SummonerEdition string         `json:"summonerEdition"`
}

// DocumentCard is one member of a planner document, summoner first, then the
// monsters in fielded order. Price is nil when the card is owned or has no
// market listing.
type DocumentCard struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Level      int      `json:"level"`
	Mana       int      `json:"mana"`
	Splinter   string   `json:"splinter"`
	Edition    string   `json:"edition,omitempty"`
	Icon       string   `json:"icon"`
	FiatSymbol string   `json:"fiatSymbol"`
	Price      *float64 `json:"price,omitempty"`
}

// DeckDocument is a client-held deck being re-valued against current prices
// and results. WinPc and Battles are nil when the deck's composition has no
// recorded results in the aggregation window.
type DeckDocument struct {
	ID         string     `json:"id"`
	Updated    int64      `json:"updated"`
	FiatSymbol string     `json:"fiatSymbol"`
	Monsters   []DeckCard `json:"monsters"`
	Price      float64    `json:"price"`
	WinPc      *float64   `json:"winpc,omitempty"`
	Battles    *int       `json:"battles,omitempty"`
}

// DeckCard is one card of a client deck.
type DeckCard struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Level int      `json:"level"`
	Price *float64 `json:"price,omitempty"`
}
