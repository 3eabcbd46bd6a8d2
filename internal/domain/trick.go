package domain

// PlayedCard pairs a card on the table with the seat that played it.
type PlayedCard struct {
	Seat int
	Card Card
}

// Trick holds the cards played so far in the trick in progress, in play
// order.
type Trick struct {
	Plays []PlayedCard
}

// Add appends a play to the trick.
func (t *Trick) Add(seat int, c Card) {
	t.Plays = append(t.Plays, PlayedCard{Seat: seat, Card: c})
}

// cardRanking returns the total order of cards able to win a trick with the
// given led and trump suits, strongest first: right bower, left bower, the
// remaining trump cards by rank, then the led suit by rank when it differs
// from trump. Cards outside this order cannot win regardless of rank. The
// led-suit jack is skipped when led shares the trump's color, because that
// jack is the left bower and already ranked as trump.
func cardRanking(led, trump Suit) []Card {
	ranking := make([]Card, 0, 12)
	add := func(c Card) {
		for _, ranked := range ranking {
			if ranked == c {
				return
			}
		}
		ranking = append(ranking, c)
	}

	add(Card{Suit: trump, Rank: Jack})
	add(Card{Suit: trump.SameColor(), Rank: Jack})
	for _, r := range []Rank{Ace, King, Queen, Ten, Nine} {
		add(Card{Suit: trump, Rank: r})
	}
	if led != trump {
		for _, r := range []Rank{Ace, King, Queen, Jack, Ten, Nine} {
			add(Card{Suit: led, Rank: r})
		}
	}
	return ranking
}

// Winner returns the seat that won a completed trick. The ranking is a
// total order over all cards that can win, so a missing winner means the
// engine itself is broken, not that the caller misplayed.
func (t *Trick) Winner(led, trump Suit) (int, error) {
	if len(t.Plays) != NumSeats {
		return 0, newInvariantError("trick evaluated with %d plays", len(t.Plays))
	}

	ranking := cardRanking(led, trump)
	winner, best := -1, len(ranking)
	for _, play := range t.Plays {
		for pos, ranked := range ranking {
			if ranked == play.Card {
				if pos < best {
					best = pos
					winner = play.Seat
				}
				break
			}
		}
	}
	if winner < 0 {
		return 0, newInvariantError("no played card ranks for led %s trump %s", led, trump)
	}
	return winner, nil
}
