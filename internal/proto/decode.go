package proto

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals an inbound event payload into its typed struct and
// validates required fields. Unknown event names return (nil, nil) so the
// dispatcher can skip server additions this client does not understand yet.
func Decode(event string, data json.RawMessage) (any, error) {
	switch event {
	case EventAddCard, EventSelectCard, EventDeselectCard, EventRemoveCard:
		var p CardData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Card < MinCard || p.Card > MaxCard {
			return nil, fmt.Errorf("card %d out of range", p.Card)
		}
		return p, nil

	case EventClearCards, EventClearHandInPlay, EventSetAsker, EventSetGiver:
		return struct{}{}, nil

	case EventSetHandInPlay:
		var p HandInPlayData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetOnTurn:
		var p OnTurnData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetUnlocked:
		var p UnlockedData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetPassUnlocked:
		var p PassUnlockedData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetSpot:
		var p SpotData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if err := validSpot(p.Spot); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetTrading:
		var p TradingData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSelectAskingOption, EventDeselectAskingOption:
		var p AskingOptionData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Value < MinRank || p.Value > MaxRank {
			return nil, fmt.Errorf("asking rank %d out of range", p.Value)
		}
		return p, nil

	case EventSetAskingOption:
		var p SetAskingOptionData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.NewRank < MinRank || p.NewRank > MaxRank {
			return nil, fmt.Errorf("asking rank %d out of range", p.NewRank)
		}
		return p, nil

	case EventSetGivingOptions:
		var p GivingOptionsData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		for _, card := range p.Options {
			if card < MinCard || card > MaxCard {
				return nil, fmt.Errorf("giving option card %d out of range", card)
			}
		}
		return p, nil

	case EventSetTakes:
		var p TakesData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetGives:
		var p GivesData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetCardsRemaining:
		var p CardsRemainingData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if err := validSpot(p.Spot); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetNames:
		var p NamesData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if len(p.Names) != NumSeats {
			return nil, fmt.Errorf("expected %d names, got %d", NumSeats, len(p.Names))
		}
		return p, nil

	case EventSetDotColor:
		var p DotColorData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if err := validSpot(p.Spot); err != nil {
			return nil, err
		}
		return p, nil

	case EventSetTime:
		var p TimeData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		switch p.Which {
		case TimerTurn, TimerReserve:
			if p.Spot == nil {
				return nil, fmt.Errorf("set_time %q requires a spot", p.Which)
			}
			if err := validSpot(*p.Spot); err != nil {
				return nil, err
			}
		case TimerTrading:
			// broadcast to every seat, no spot
		default:
			return nil, fmt.Errorf("unknown timer kind %q", p.Which)
		}
		return p, nil

	case EventMessage:
		var p MessageData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventAlert:
		var p AlertData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	case EventUpdateCurrentHandStr:
		var p HandStrData
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, nil
	}
}

func unmarshal(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	return nil
}

func validSpot(spot int) error {
	if spot < 0 || spot >= NumSeats {
		return fmt.Errorf("spot %d out of range", spot)
	}
	return nil
}
