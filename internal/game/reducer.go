package game

import (
	"fmt"

	"github.com/presidents-game/client-go/internal/proto"
)

// Apply reduces one inbound event into a new state. The input state is left
// untouched; callers swap in the returned pointer. Events referencing cards
// the hand does not contain are no-ops rather than errors: the server is
// trusted, this just keeps ordering bugs from corrupting the mirror.
//
// set_time is not handled here; timer snapshots live in the timer subsystem,
// not in game state.
func Apply(s *State, event string, payload any) (*State, error) {
	reduce, ok := reducers[event]
	if !ok {
		return nil, fmt.Errorf("no reducer for event %q", event)
	}
	next := s.clone()
	if err := reduce(next, payload); err != nil {
		return nil, err
	}
	return next, nil
}

var reducers = map[string]func(*State, any) error{
	proto.EventAddCard:              reduceAddCard,
	proto.EventSelectCard:           reduceSelectCard,
	proto.EventDeselectCard:         reduceDeselectCard,
	proto.EventRemoveCard:           reduceRemoveCard,
	proto.EventClearCards:           reduceClearCards,
	proto.EventSetHandInPlay:        reduceSetHandInPlay,
	proto.EventClearHandInPlay:      reduceClearHandInPlay,
	proto.EventSetOnTurn:            reduceSetOnTurn,
	proto.EventSetUnlocked:          reduceSetUnlocked,
	proto.EventSetPassUnlocked:      reduceSetPassUnlocked,
	proto.EventSetSpot:              reduceSetSpot,
	proto.EventSetAsker:             reduceSetAsker,
	proto.EventSetGiver:             reduceSetGiver,
	proto.EventSetTrading:           reduceSetTrading,
	proto.EventSelectAskingOption:   reduceSelectAskingOption,
	proto.EventDeselectAskingOption: reduceDeselectAskingOption,
	proto.EventSetAskingOption:      reduceSetAskingOption,
	proto.EventSetGivingOptions:     reduceSetGivingOptions,
	proto.EventSetTakes:             reduceSetTakes,
	proto.EventSetGives:             reduceSetGives,
	proto.EventSetCardsRemaining:    reduceSetCardsRemaining,
	proto.EventSetNames:             reduceSetNames,
	proto.EventSetDotColor:          reduceSetDotColor,
	proto.EventMessage:              reduceMessage,
	proto.EventAlert:                reduceAlert,
	proto.EventUpdateCurrentHandStr: reduceCurrentHandStr,
}

func reduceAddCard(s *State, payload any) error {
	p, err := payloadAs[proto.CardData](payload)
	if err != nil {
		return err
	}
	// A re-add resets the selection flag, last write wins.
	s.Cards[p.Card] = false
	return nil
}

func reduceSelectCard(s *State, payload any) error {
	p, err := payloadAs[proto.CardData](payload)
	if err != nil {
		return err
	}
	if _, held := s.Cards[p.Card]; !held {
		return nil
	}
	s.Cards[p.Card] = true
	return nil
}

func reduceDeselectCard(s *State, payload any) error {
	p, err := payloadAs[proto.CardData](payload)
	if err != nil {
		return err
	}
	if _, held := s.Cards[p.Card]; !held {
		return nil
	}
	s.Cards[p.Card] = false
	return nil
}

func reduceRemoveCard(s *State, payload any) error {
	p, err := payloadAs[proto.CardData](payload)
	if err != nil {
		return err
	}
	// Deleting the entry drops the selection flag with it; selection and
	// membership never diverge.
	delete(s.Cards, p.Card)
	return nil
}

func reduceClearCards(s *State, _ any) error {
	s.Cards = make(map[int]bool)
	return nil
}

func reduceSetHandInPlay(s *State, payload any) error {
	p, err := payloadAs[proto.HandInPlayData](payload)
	if err != nil {
		return err
	}
	s.HandInPlay = append([]int(nil), p.HandInPlay...)
	s.HandInPlayDesc = p.HandInPlayDesc
	return nil
}

func reduceClearHandInPlay(s *State, _ any) error {
	s.HandInPlay = nil
	s.HandInPlayDesc = ""
	return nil
}

func reduceSetOnTurn(s *State, payload any) error {
	p, err := payloadAs[proto.OnTurnData](payload)
	if err != nil {
		return err
	}
	s.OnTurn = p.OnTurn
	return nil
}

func reduceSetUnlocked(s *State, payload any) error {
	p, err := payloadAs[proto.UnlockedData](payload)
	if err != nil {
		return err
	}
	s.Unlocked = p.Unlocked
	return nil
}

func reduceSetPassUnlocked(s *State, payload any) error {
	p, err := payloadAs[proto.PassUnlockedData](payload)
	if err != nil {
		return err
	}
	s.PassUnlocked = p.PassUnlocked
	return nil
}

func reduceSetSpot(s *State, payload any) error {
	p, err := payloadAs[proto.SpotData](payload)
	if err != nil {
		return err
	}
	s.Spot = p.Spot
	return nil
}

func reduceSetAsker(s *State, _ any) error {
	s.Asker = true
	return nil
}

func reduceSetGiver(s *State, _ any) error {
	s.Giver = true
	return nil
}

func reduceSetTrading(s *State, payload any) error {
	p, err := payloadAs[proto.TradingData](payload)
	if err != nil {
		return err
	}
	s.Trading = p.Trading
	if !p.Trading {
		// Leaving the trading phase resets roles and asking selections in
		// the same reduction; nothing else changes.
		s.Asker = false
		s.Giver = false
		for rank := range s.AskingOptions {
			s.AskingOptions[rank] = false
		}
	}
	return nil
}

func reduceSelectAskingOption(s *State, payload any) error {
	p, err := payloadAs[proto.AskingOptionData](payload)
	if err != nil {
		return err
	}
	// Single-valued selection: picking a rank drops any previous pick.
	for rank := range s.AskingOptions {
		s.AskingOptions[rank] = false
	}
	s.AskingOptions[p.Value] = true
	return nil
}

func reduceDeselectAskingOption(s *State, payload any) error {
	p, err := payloadAs[proto.AskingOptionData](payload)
	if err != nil {
		return err
	}
	if _, present := s.AskingOptions[p.Value]; !present {
		return nil
	}
	s.AskingOptions[p.Value] = false
	return nil
}

func reduceSetAskingOption(s *State, payload any) error {
	p, err := payloadAs[proto.SetAskingOptionData](payload)
	if err != nil {
		return err
	}
	if p.OldRank != nil {
		s.AskingOptions[*p.OldRank] = false
	}
	s.AskingOptions[p.NewRank] = true
	return nil
}

func reduceSetGivingOptions(s *State, payload any) error {
	p, err := payloadAs[proto.GivingOptionsData](payload)
	if err != nil {
		return err
	}
	for _, card := range p.Options {
		if p.Highlight {
			s.GivingOptions[card] = true
		} else {
			delete(s.GivingOptions, card)
		}
	}
	return nil
}

func reduceSetTakes(s *State, payload any) error {
	p, err := payloadAs[proto.TakesData](payload)
	if err != nil {
		return err
	}
	s.Takes = p.Takes
	return nil
}

func reduceSetGives(s *State, payload any) error {
	p, err := payloadAs[proto.GivesData](payload)
	if err != nil {
		return err
	}
	s.Gives = p.Gives
	return nil
}

func reduceSetCardsRemaining(s *State, payload any) error {
	p, err := payloadAs[proto.CardsRemainingData](payload)
	if err != nil {
		return err
	}
	s.CardsRemaining[p.Spot] = p.CardsRemaining
	return nil
}

func reduceSetNames(s *State, payload any) error {
	p, err := payloadAs[proto.NamesData](payload)
	if err != nil {
		return err
	}
	for spot := 0; spot < NumSeats && spot < len(p.Names); spot++ {
		s.Names[spot] = p.Names[spot]
	}
	return nil
}

func reduceSetDotColor(s *State, payload any) error {
	p, err := payloadAs[proto.DotColorData](payload)
	if err != nil {
		return err
	}
	s.DotColors[p.Spot] = p.DotColor
	return nil
}

func reduceMessage(s *State, payload any) error {
	p, err := payloadAs[proto.MessageData](payload)
	if err != nil {
		return err
	}
	s.Messages = append(s.Messages, p.Message)
	return nil
}

func reduceAlert(s *State, payload any) error {
	p, err := payloadAs[proto.AlertData](payload)
	if err != nil {
		return err
	}
	s.Alert = p.Alert
	return nil
}

func reduceCurrentHandStr(s *State, payload any) error {
	p, err := payloadAs[proto.HandStrData](payload)
	if err != nil {
		return err
	}
	s.CurrentHandStr = p.Str
	return nil
}

func payloadAs[T any](payload any) (T, error) {
	p, ok := payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("payload %T is not %T", payload, zero)
	}
	return p, nil
}
