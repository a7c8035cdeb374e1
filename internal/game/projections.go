package game

import "sort"

// Role is the local player's part in the trading phase.
type Role int

const (
	RoleNone Role = iota
	RoleAsker
	RoleGiver
)

func (r Role) String() string {
	switch r {
	case RoleAsker:
		return "asker"
	case RoleGiver:
		return "giver"
	default:
		return "none"
	}
}

// Role derives the trading role from the state flags. Outside the trading
// phase the role is always none.
func (s *State) Role() Role {
	if !s.Trading {
		return RoleNone
	}
	switch {
	case s.Asker:
		return RoleAsker
	case s.Giver:
		return RoleGiver
	default:
		return RoleNone
	}
}

// CardsInOrder returns the hand's card identifiers sorted by rank order.
func (s *State) CardsInOrder() []int {
	cards := make([]int, 0, len(s.Cards))
	for card := range s.Cards {
		cards = append(cards, card)
	}
	sort.Ints(cards)
	return cards
}

// SelectedCards returns the selected card identifiers in rank order.
func (s *State) SelectedCards() []int {
	var cards []int
	for card, selected := range s.Cards {
		if selected {
			cards = append(cards, card)
		}
	}
	sort.Ints(cards)
	return cards
}

// AnyCardSelected reports whether at least one card is selected.
func (s *State) AnyCardSelected() bool {
	for _, selected := range s.Cards {
		if selected {
			return true
		}
	}
	return false
}

// SelectedAskingOption returns the selected rank, or 0 when none is selected.
func (s *State) SelectedAskingOption() int {
	for rank, selected := range s.AskingOptions {
		if selected {
			return rank
		}
	}
	return 0
}

// AnyAskingOptionSelected reports whether an askable rank is selected.
func (s *State) AnyAskingOptionSelected() bool {
	return s.SelectedAskingOption() != 0
}

// ActionLabel computes the label of the primary trading action button.
// Card selection takes priority over rank selection when both are present.
func (s *State) ActionLabel() string {
	switch {
	case s.AnyCardSelected():
		return "give"
	case s.AnyAskingOptionSelected():
		return "ask"
	default:
		return "ask/give"
	}
}
