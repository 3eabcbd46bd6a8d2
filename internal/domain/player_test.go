package domain

import (
	"errors"
	"testing"
)

func TestPlayerDrawLimits(t *testing.T) {
	p := &Player{Name: "sam"}
	deck := NewDeck()

	for i := 0; i < HandSize; i++ {
		if err := p.Draw(deck[i]); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if len(p.Hand) != HandSize {
		t.Fatalf("hand size = %d, want %d", len(p.Hand), HandSize)
	}

	err := p.Draw(deck[HandSize])
	var rerr *RulesError
	if !errors.As(err, &rerr) || rerr.Code != CodeHand {
		t.Fatalf("overdraw error = %v, want hand RulesError", err)
	}
	if len(p.Hand) != HandSize {
		t.Fatalf("overdraw mutated hand: size %d", len(p.Hand))
	}
}

func TestPlayerDrawDuplicate(t *testing.T) {
	p := &Player{Name: "gwyn"}
	c := Card{Suit: Hearts, Rank: Ace}
	if err := p.Draw(c); err != nil {
		t.Fatalf("draw: %v", err)
	}
	err := p.Draw(c)
	var rerr *RulesError
	if !errors.As(err, &rerr) || rerr.Code != CodeHand {
		t.Fatalf("duplicate draw error = %v, want hand RulesError", err)
	}
	if len(p.Hand) != 1 {
		t.Fatalf("duplicate draw mutated hand: size %d", len(p.Hand))
	}
}

func TestPlayerPlay(t *testing.T) {
	p := &Player{Name: "grace"}
	held := Card{Suit: Spades, Rank: King}
	absent := Card{Suit: Clubs, Rank: Nine}
	if err := p.Draw(held); err != nil {
		t.Fatalf("draw: %v", err)
	}

	err := p.Play(absent)
	var rerr *RulesError
	if !errors.As(err, &rerr) || rerr.Code != CodeHand {
		t.Fatalf("play absent error = %v, want hand RulesError", err)
	}
	if !p.Holds(held) {
		t.Fatal("failed play mutated hand")
	}

	if err := p.Play(held); err != nil {
		t.Fatalf("play held: %v", err)
	}
	if p.Holds(held) {
		t.Fatal("played card still in hand")
	}
}
