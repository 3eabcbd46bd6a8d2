package domain

// Player holds the identity and hand of one seat.
type Player struct {
	Name string
	Seat int
	Hand []Card
}

// Holds reports whether the card is currently in the player's hand.
func (p *Player) Holds(c Card) bool {
	for _, held := range p.Hand {
		if held == c {
			return true
		}
	}
	return false
}

// Draw adds a card to the hand. Hands never exceed HandSize cards and never
// contain the same card twice.
func (p *Player) Draw(c Card) error {
	if len(p.Hand) >= HandSize {
		return newRulesError(CodeHand, "hand full")
	}
	if p.Holds(c) {
		return newRulesError(CodeHand, "duplicate card %s", c.Code())
	}
	p.Hand = append(p.Hand, c)
	return nil
}

// Play removes a card from the hand so it can be placed on the table.
func (p *Player) Play(c Card) error {
	for i, held := range p.Hand {
		if held == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return newRulesError(CodeHand, "card %s not in hand", c.Code())
}
