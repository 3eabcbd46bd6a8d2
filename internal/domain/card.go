package domain

const (
	// NumSeats is the number of players in a Euchre game.
	NumSeats = 4
	// NumTeams is the number of partnered teams; seats 0,2 vs seats 1,3.
	NumTeams = 2
	// HandSize is the maximum number of cards a player may hold.
	HandSize = 5
	// DeckSize is the size of the Euchre deck (9 through ace in four suits).
	DeckSize = 24
	// TricksPerRound is the number of tricks played before a round is scored.
	TricksPerRound = 5
)

// Suit identifies one of the four card suits.
type Suit int32

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// SameColor returns the suit sharing this suit's color, which determines
// the left bower (spades/clubs, hearts/diamonds).
func (s Suit) SameColor() Suit {
	switch s {
	case Spades:
		return Clubs
	case Clubs:
		return Spades
	case Hearts:
		return Diamonds
	default:
		return Hearts
	}
}

// Code returns the short wire code for the suit.
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return ""
	}
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// SuitFromCode parses a short wire code into a Suit.
func SuitFromCode(code string) (Suit, bool) {
	switch code {
	case "S":
		return Spades, true
	case "H":
		return Hearts, true
	case "D":
		return Diamonds, true
	case "C":
		return Clubs, true
	default:
		return 0, false
	}
}

// Rank identifies a card rank. The deck runs 9 through ace; the order here
// is plain rank order and does not account for bower promotion.
type Rank int32

const (
	Nine Rank = iota
	Ten
	Jack
	Queen
	King
	Ace
)

// Code returns the short wire code for the rank.
func (r Rank) Code() string {
	switch r {
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return ""
	}
}

func (r Rank) String() string { return r.Code() }

// RankFromCode parses a short wire code into a Rank.
func RankFromCode(code string) (Rank, bool) {
	switch code {
	case "9":
		return Nine, true
	case "10":
		return Ten, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	case "A":
		return Ace, true
	default:
		return 0, false
	}
}

// Card is a single playing card in the Euchre deck. Cards are compared by
// value; two cards are the same card exactly when suit and rank match.
type Card struct {
	Suit Suit
	Rank Rank
}

// Code returns the compact card code, e.g. "JS" for the jack of spades.
func (c Card) Code() string { return c.Rank.Code() + c.Suit.Code() }

func (c Card) String() string { return c.Code() }
