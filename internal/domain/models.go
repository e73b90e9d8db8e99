package domain

// Player is a registered skater. The backend treats the record as opaque:
// whatever attributes the frontend stores (position, skill, paid flag)
// survive a save/load round trip untouched.
type Player map[string]any

// GameStatus is the singleton broadcast record for the next game. A POST
// replaces it wholesale; there are no merge semantics.
type GameStatus struct {
	CancelledFor *string `json:"cancelledFor"`
	BBQOn        bool    `json:"bbqOn"`
	Message      string  `json:"message"`
	TeamsLocked  bool    `json:"teamsLocked"`
}

// DefaultGameStatus is what gamestatus.json is seeded with on first boot.
func DefaultGameStatus() GameStatus {
	return GameStatus{}
}

// TeamFile is one archived game: the drafted rosters plus scores and fan
// votes accumulated after the fact. Score and vote fields are omitted from
// the JSON until first written so a freshly created file holds rosters only.
type TeamFile struct {
	Teams      Rosters `json:"teams"`
	ScoreLight *int    `json:"scoreLight,omitempty"`
	ScoreDark  *int    `json:"scoreDark,omitempty"`
	VotesLight *int    `json:"votesLight,omitempty"`
	VotesDark  *int    `json:"votesDark,omitempty"`
}

// Rosters holds the two drafted sides.
type Rosters struct {
	Light []Player `json:"Light"`
	Dark  []Player `json:"Dark"`
}

// ScoreUpdate carries a partial score write; nil means leave that side alone.
type ScoreUpdate struct {
	Light *int `json:"light"`
	Dark  *int `json:"dark"`
}

// ImageEntry is one uploaded camera frame.
type ImageEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
	Filename  string `json:"filename"`
}

// ImageIndex maps device name -> date (YYYY-MM-DD) -> frames sorted by
// timestamp ascending. Derived from the upload directory layout on every
// call, never persisted.
type ImageIndex map[string]map[string][]ImageEntry

// VoteSide names which team a fan vote goes to.
type VoteSide string

const (
	VoteLight VoteSide = "Light"
	VoteDark  VoteSide = "Dark"
)
