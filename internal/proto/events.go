package proto

import "encoding/json"

// Inbound is the envelope for events pushed by the server.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for actions sent by the client.
type Outbound struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// Inbound event names (server -> client).
const (
	EventAddCard              = "add_card"
	EventSelectCard           = "select_card"
	EventDeselectCard         = "deselect_card"
	EventRemoveCard           = "remove_card"
	EventClearCards           = "clear_cards"
	EventSetHandInPlay        = "set_hand_in_play"
	EventClearHandInPlay      = "clear_hand_in_play"
	EventSetOnTurn            = "set_on_turn"
	EventSetUnlocked          = "set_unlocked"
	EventSetPassUnlocked      = "set_pass_unlocked"
	EventSetSpot              = "set_spot"
	EventSetAsker             = "set_asker"
	EventSetGiver             = "set_giver"
	EventSetTrading           = "set_trading"
	EventSelectAskingOption   = "select_asking_option"
	EventDeselectAskingOption = "deselect_asking_option"
	EventSetAskingOption      = "set_asking_option"
	EventSetGivingOptions     = "set_giving_options"
	EventSetTakes             = "set_takes"
	EventSetGives             = "set_gives"
	EventSetCardsRemaining    = "set_cards_remaining"
	EventSetNames             = "set_names"
	EventSetDotColor          = "set_dot_color"
	EventSetTime              = "set_time"
	EventMessage              = "message"
	EventAlert                = "alert"
	EventUpdateCurrentHandStr = "update_current_hand_str"
)

// Outbound action names (client -> server).
const (
	ActionCardClick   = "card_click"
	ActionAskingClick = "asking_click"
	ActionUnlock      = "unlock"
	ActionLock        = "lock"
	ActionUnlockPass  = "unlock_pass"
	ActionPlay        = "play"
	ActionPass        = "pass"
	ActionAsk         = "ask"
	ActionGive        = "give"
)

// Timer kinds carried in the "which" field of set_time.
const (
	TimerTurn    = "turn"
	TimerReserve = "reserve"
	TimerTrading = "trading"
)
