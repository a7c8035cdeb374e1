package game

// NumSeats is the fixed number of player positions.
const NumSeats = 4

// State is the local mirror of one game session. It is updated only through
// Apply, which returns a fresh copy; a published *State is never mutated, so
// readers may hold onto one without locking.
type State struct {
	// Spot is the local player's seat, or -1 before the server assigns one.
	Spot int

	// Cards maps card identifier to its selection flag for the local hand.
	// The key set is exactly the cards the server has dealt to this client.
	Cards map[int]bool

	HandInPlay     []int
	HandInPlayDesc string

	// CurrentHandStr describes the locally selected cards.
	CurrentHandStr string

	OnTurn       bool
	Unlocked     bool
	PassUnlocked bool

	Trading bool
	Asker   bool
	Giver   bool

	// AskingOptions maps rank (1-13) to its selection flag. At most one rank
	// is selected at a time during the asking step.
	AskingOptions map[int]bool

	// GivingOptions holds the cards currently highlighted for giving.
	GivingOptions map[int]bool

	Takes int
	Gives int

	CardsRemaining [NumSeats]int
	Names          [NumSeats]string
	DotColors      [NumSeats]string

	Messages []string
	Alert    string
}

// NewState returns the empty state a session starts from.
func NewState() *State {
	st := &State{
		Spot:          -1,
		Cards:         make(map[int]bool),
		AskingOptions: make(map[int]bool),
		GivingOptions: make(map[int]bool),
	}
	for spot := range st.CardsRemaining {
		st.CardsRemaining[spot] = 13
		st.DotColors[spot] = "red"
	}
	return st
}

// clone returns a deep copy sharing nothing mutable with the receiver.
func (s *State) clone() *State {
	next := *s

	next.Cards = make(map[int]bool, len(s.Cards))
	for card, selected := range s.Cards {
		next.Cards[card] = selected
	}
	next.AskingOptions = make(map[int]bool, len(s.AskingOptions))
	for rank, selected := range s.AskingOptions {
		next.AskingOptions[rank] = selected
	}
	next.GivingOptions = make(map[int]bool, len(s.GivingOptions))
	for card, highlighted := range s.GivingOptions {
		next.GivingOptions[card] = highlighted
	}

	next.HandInPlay = append([]int(nil), s.HandInPlay...)
	next.Messages = append([]string(nil), s.Messages...)

	return &next
}
