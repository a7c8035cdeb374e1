package game

import (
	"testing"

	"github.com/presidents-game/client-go/internal/proto"
)

func TestActionLabelPrecedence(t *testing.T) {
	s := NewState()
	s = mustApply(t, s, proto.EventAddCard, proto.CardData{Card: 20})

	if got := s.ActionLabel(); got != "ask/give" {
		t.Fatalf("label with nothing selected = %q, want ask/give", got)
	}

	s = mustApply(t, s, proto.EventSelectAskingOption, proto.AskingOptionData{Value: 3})
	if got := s.ActionLabel(); got != "ask" {
		t.Fatalf("label with rank selected = %q, want ask", got)
	}

	// Card selection takes priority over rank selection.
	s = mustApply(t, s, proto.EventSelectCard, proto.CardData{Card: 20})
	if got := s.ActionLabel(); got != "give" {
		t.Fatalf("label with card and rank selected = %q, want give", got)
	}

	s = mustApply(t, s, proto.EventDeselectCard, proto.CardData{Card: 20})
	if got := s.ActionLabel(); got != "ask" {
		t.Fatalf("label after deselecting card = %q, want ask", got)
	}
}

func TestRoleDerivation(t *testing.T) {
	s := NewState()
	if s.Role() != RoleNone {
		t.Fatalf("fresh state role = %v, want none", s.Role())
	}

	s = mustApply(t, s, proto.EventSetTrading, proto.TradingData{Trading: true})
	s = mustApply(t, s, proto.EventSetAsker, struct{}{})
	if s.Role() != RoleAsker {
		t.Fatalf("role = %v, want asker", s.Role())
	}

	s = mustApply(t, s, proto.EventSetTrading, proto.TradingData{Trading: false})
	if s.Role() != RoleNone {
		t.Fatalf("role after trading ended = %v, want none", s.Role())
	}
}

func TestRoleOutsideTradingIsNone(t *testing.T) {
	s := NewState()
	// set_asker may arrive a beat before set_trading; the projection stays
	// none until trading is actually on.
	s = mustApply(t, s, proto.EventSetAsker, struct{}{})
	if s.Role() != RoleNone {
		t.Fatalf("role = %v, want none while trading is off", s.Role())
	}
}

func TestCardsInOrderSorted(t *testing.T) {
	s := NewState()
	for _, card := range []int{41, 3, 27, 14} {
		s = mustApply(t, s, proto.EventAddCard, proto.CardData{Card: card})
	}

	got := s.CardsInOrder()
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("cards not in rank order: %v", got)
		}
	}
}
