package proto

// Card bounds for the 53-slot deck variant (52 cards plus joker slot).
const (
	MinCard = 1
	MaxCard = 53

	MinRank = 1
	MaxRank = 13

	NumSeats = 4
)

// CardData identifies a single card for add/select/deselect/remove and card_click.
type CardData struct {
	Card int `json:"card"`
}

// HandInPlayData carries the most recently played hand and its description.
type HandInPlayData struct {
	HandInPlay     []int  `json:"hand_in_play"`
	HandInPlayDesc string `json:"hand_in_play_desc"`
}

// OnTurnData flags whether the local player is on turn.
type OnTurnData struct {
	OnTurn bool `json:"on_turn"`
}

// UnlockedData flags whether the play action is unlocked.
type UnlockedData struct {
	Unlocked bool `json:"unlocked"`
}

// PassUnlockedData flags whether the pass action is unlocked.
type PassUnlockedData struct {
	PassUnlocked bool `json:"pass_unlocked"`
}

// SpotData assigns the local player's seat.
type SpotData struct {
	Spot int `json:"spot"`
}

// TradingData toggles the trading phase.
type TradingData struct {
	Trading bool `json:"trading"`
}

// AskingOptionData selects or deselects a single askable rank, and is also
// the payload of asking_click.
type AskingOptionData struct {
	Value int `json:"value"`
}

// SetAskingOptionData replaces the selected rank, clearing old_rank when present.
type SetAskingOptionData struct {
	OldRank *int `json:"old_rank,omitempty"`
	NewRank int  `json:"new_rank"`
}

// GivingOptionsData highlights or unhighlights the cards a giver may hand over.
type GivingOptionsData struct {
	Options   []int `json:"options"`
	Highlight bool  `json:"highlight"`
}

// TakesData sets the asker's remaining take count.
type TakesData struct {
	Takes int `json:"takes"`
}

// GivesData sets the giver's remaining give count.
type GivesData struct {
	Gives int `json:"gives"`
}

// CardsRemainingData updates one seat's card count.
type CardsRemainingData struct {
	Spot           int `json:"spot"`
	CardsRemaining int `json:"cards_remaining"`
}

// NamesData replaces all four seat display names.
type NamesData struct {
	Names []string `json:"names"`
}

// DotColorData updates one seat's status dot.
type DotColorData struct {
	Spot     int    `json:"spot"`
	DotColor string `json:"dot_color"`
}

// TimeData is an authoritative timer snapshot. Time is remaining milliseconds,
// Timestamp is the server clock in unix milliseconds at emission, Start tells
// whether the countdown is running. Spot is absent for the trading timer.
type TimeData struct {
	Which     string  `json:"which"`
	Spot      *int    `json:"spot,omitempty"`
	Time      float64 `json:"time"`
	Timestamp float64 `json:"timestamp"`
	Start     bool    `json:"start"`
}

// MessageData appends a line to the session message log.
type MessageData struct {
	Message string `json:"message"`
}

// AlertData carries a transient alert string.
type AlertData struct {
	Alert string `json:"alert"`
}

// HandStrData updates the description of the locally selected cards.
type HandStrData struct {
	Str string `json:"str"`
}

// JoinInfo is returned by the lobby when creating or joining a session.
type JoinInfo struct {
	SessionID      string `json:"session_id"`
	JoinCredential string `json:"join_credential"`
}
