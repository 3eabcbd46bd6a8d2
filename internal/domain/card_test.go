package domain

import "testing"

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %s in fresh deck", c)
		}
		seen[c] = true
	}

	perSuit := make(map[Suit]int)
	for c := range seen {
		perSuit[c.Suit]++
		if c.Rank < Nine || c.Rank > Ace {
			t.Fatalf("unexpected rank %d on %s", c.Rank, c)
		}
	}
	for _, s := range []Suit{Spades, Hearts, Diamonds, Clubs} {
		if perSuit[s] != 6 {
			t.Fatalf("suit %s has %d cards, want 6", s, perSuit[s])
		}
	}
}

func TestSameColorPairing(t *testing.T) {
	pairs := map[Suit]Suit{
		Spades:   Clubs,
		Clubs:    Spades,
		Hearts:   Diamonds,
		Diamonds: Hearts,
	}
	for s, want := range pairs {
		if got := s.SameColor(); got != want {
			t.Errorf("%s.SameColor() = %s, want %s", s, got, want)
		}
	}
}

func TestCardCodes(t *testing.T) {
	tests := []struct {
		card Card
		code string
	}{
		{Card{Suit: Spades, Rank: Jack}, "JS"},
		{Card{Suit: Hearts, Rank: Ten}, "10H"},
		{Card{Suit: Diamonds, Rank: Ace}, "AD"},
		{Card{Suit: Clubs, Rank: Nine}, "9C"},
	}
	for _, tt := range tests {
		if got := tt.card.Code(); got != tt.code {
			t.Errorf("%v.Code() = %q, want %q", tt.card, got, tt.code)
		}
		s, ok := SuitFromCode(tt.card.Suit.Code())
		if !ok || s != tt.card.Suit {
			t.Errorf("SuitFromCode(%q) = %v, %v", tt.card.Suit.Code(), s, ok)
		}
		r, ok := RankFromCode(tt.card.Rank.Code())
		if !ok || r != tt.card.Rank {
			t.Errorf("RankFromCode(%q) = %v, %v", tt.card.Rank.Code(), r, ok)
		}
	}
	if _, ok := SuitFromCode("X"); ok {
		t.Error("SuitFromCode accepted an unknown code")
	}
	if _, ok := RankFromCode("8"); ok {
		t.Error("RankFromCode accepted a rank outside the deck")
	}
}
