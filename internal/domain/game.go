package domain

import (
	"math/rand"
	"time"
)

// Phase represents the lifecycle stage of a Euchre game.
type Phase string

const (
	// PhaseAwaitingPlayers is the pre-game state where seats fill up.
	PhaseAwaitingPlayers Phase = "awaiting_players"
	// PhaseBiddingRound1 offers each seat the turned-up card's suit.
	PhaseBiddingRound1 Phase = "bidding_round_1"
	// PhaseBiddingRound2 lets seats name any other suit; the dealer is stuck.
	PhaseBiddingRound2 Phase = "bidding_round_2"
	// PhaseDealerDiscard waits for the dealer to swap out a card for the top card.
	PhaseDealerDiscard Phase = "dealer_discard"
	// PhasePlaying is trick play.
	PhasePlaying Phase = "playing"
	// PhaseFinished is terminal; no further actions are accepted.
	PhaseFinished Phase = "finished"
)

// BidAction is a bidding decision kind.
type BidAction string

const (
	BidPass    BidAction = "pass"
	BidOrderUp BidAction = "order_up"
	BidCall    BidAction = "call"
)

// Bid is a single bidding decision. Suit is only read for BidCall.
type Bid struct {
	Action BidAction
	Suit   Suit
}

// DefaultTargetScore is the first-to score that ends a game.
const DefaultTargetScore = 10

// Game holds the authoritative state for a single Euchre game. It is not
// safe for concurrent mutation; embedders must serialize all calls.
type Game struct {
	Phase   Phase
	Players []*Player
	Scores  [NumTeams]int
	Target  int

	Dealer  int // -1 until the first round starts
	Turn    int
	TopCard Card
	Trump   Suit
	Maker   int // team that named trump, -1 while bidding

	Tricks       [NumTeams]int
	CurrentTrick Trick

	deck     []Card
	trumpSet bool
	rng      *rand.Rand
}

// NewGame constructs an empty game. A zero or negative targetScore falls
// back to DefaultTargetScore; a nil rng gets a time-seeded default.
func NewGame(targetScore int, rng *rand.Rand) *Game {
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		Phase:  PhaseAwaitingPlayers,
		Target: targetScore,
		Dealer: -1,
		Maker:  -1,
		rng:    rng,
	}
}

// TeamOfSeat maps a seat to its team: seats 0,2 are team 0, seats 1,3 are
// team 1.
func TeamOfSeat(seat int) int { return seat % NumTeams }

func nextSeat(seat int) int { return (seat + 1) % NumSeats }

// RegisterPlayer adds a player at the next free seat and returns the seat
// index. The fourth registration starts the first round immediately.
func (g *Game) RegisterPlayer(name string) (int, error) {
	if g.Phase == PhaseFinished {
		return 0, errGameOver()
	}
	if g.Phase != PhaseAwaitingPlayers {
		return 0, newRulesError(CodeSetup, "game already has %d players", NumSeats)
	}
	seat := len(g.Players)
	g.Players = append(g.Players, &Player{Name: name, Seat: seat})
	if len(g.Players) == NumSeats {
		if err := g.startRound(); err != nil {
			return 0, err
		}
	}
	return seat, nil
}

// startRound rotates the dealer, reshuffles, deals, and opens bidding with
// the seat left of the dealer.
func (g *Game) startRound() error {
	if g.Dealer < 0 {
		g.Dealer = NumSeats - 1
	} else {
		g.Dealer = nextSeat(g.Dealer)
	}

	g.trumpSet = false
	g.Maker = -1
	g.Tricks = [NumTeams]int{}
	g.CurrentTrick = Trick{}
	for _, p := range g.Players {
		p.Hand = p.Hand[:0]
	}

	g.deck = ShuffleDeck(NewDeck(), g.rng)
	if err := g.deal(); err != nil {
		return err
	}

	g.Phase = PhaseBiddingRound1
	g.Turn = nextSeat(g.Dealer)
	return nil
}

// deal hands out five cards per seat round-robin and turns up the next card
// as the round's top card. The remaining three cards sit out for the round.
func (g *Game) deal() error {
	if len(g.Players) != NumSeats {
		return newRulesError(CodeSetup, "need %d players to deal", NumSeats)
	}
	if len(g.deck) != DeckSize {
		return newRulesError(CodeSetup, "deal requires a full shuffled deck")
	}
	for i := 0; i < NumSeats*HandSize; i++ {
		if err := g.Players[i%NumSeats].Draw(g.drawTop()); err != nil {
			return err
		}
	}
	g.TopCard = g.drawTop()
	return nil
}

func (g *Game) drawTop() Card {
	c := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return c
}

// SubmitBid applies one bidding decision for the given seat.
//
// In the first round a seat may pass or order up the top card; the dealer's
// pass closes the round and bidding restarts left of the dealer. In the
// second round a seat may pass or call any suit except the top card's, and
// the dealer may not pass.
func (g *Game) SubmitBid(seat int, bid Bid) error {
	if g.Phase == PhaseFinished {
		return errGameOver()
	}
	if g.Phase != PhaseBiddingRound1 && g.Phase != PhaseBiddingRound2 {
		return newRulesError(CodePhase, "no bidding in phase %s", g.Phase)
	}
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	if seat != g.Turn {
		return newRulesError(CodeTurn, "seat %d acted on seat %d's turn", seat, g.Turn)
	}

	switch bid.Action {
	case BidPass:
		if seat == g.Dealer {
			if g.Phase == PhaseBiddingRound2 {
				return newRulesError(CodeBidding, "dealer must call a suit")
			}
			// All four seats have now passed once.
			g.Phase = PhaseBiddingRound2
		}
		g.Turn = nextSeat(g.Turn)
		return nil

	case BidOrderUp:
		if g.Phase != PhaseBiddingRound1 {
			return newRulesError(CodeBidding, "top card can only be ordered up in the first bidding round")
		}
		g.Trump = g.TopCard.Suit
		g.trumpSet = true
		g.Maker = TeamOfSeat(seat)
		g.Phase = PhaseDealerDiscard
		g.Turn = nextSeat(g.Dealer)
		return nil

	case BidCall:
		if g.Phase != PhaseBiddingRound2 {
			return newRulesError(CodeBidding, "first bidding round allows only pass or order up")
		}
		if bid.Suit < Spades || bid.Suit > Clubs {
			return newRulesError(CodeBidding, "invalid suit")
		}
		if bid.Suit == g.TopCard.Suit {
			return newRulesError(CodeBidding, "cannot call the turned-down suit %s", bid.Suit)
		}
		g.Trump = bid.Suit
		g.trumpSet = true
		g.Maker = TeamOfSeat(seat)
		g.Phase = PhasePlaying
		g.Turn = nextSeat(g.Dealer)
		return nil

	default:
		return newRulesError(CodeBidding, "unknown bid action %q", bid.Action)
	}
}

// SubmitDiscard swaps a card out of the dealer's hand for the top card
// after the top card was ordered up, then opens trick play.
func (g *Game) SubmitDiscard(seat int, card Card) error {
	if g.Phase == PhaseFinished {
		return errGameOver()
	}
	if g.Phase != PhaseDealerDiscard {
		return newRulesError(CodePhase, "no discard expected in phase %s", g.Phase)
	}
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	if seat != g.Dealer {
		return newRulesError(CodeTurn, "only the dealer discards")
	}

	dealer := g.Players[g.Dealer]
	if err := dealer.Play(card); err != nil {
		return err
	}
	if err := dealer.Draw(g.TopCard); err != nil {
		return err
	}
	g.Phase = PhasePlaying
	g.Turn = nextSeat(g.Dealer)
	return nil
}

// PlayResult describes the transitions triggered by a single play so the
// embedding layer can report them without re-deriving state changes.
type PlayResult struct {
	NextTurn    int
	TrickDone   bool
	TrickWinner int
	Tricks      [NumTeams]int // trick counts after the completed trick
	RoundDone   bool
	ScoringTeam int // valid only when RoundDone
	Points      int // valid only when RoundDone
	GameOver    bool
}

// PlayCard plays a card from the seat's hand onto the current trick. The
// fourth card completes the trick; the winner's team is credited and the
// winner leads next. The fifth trick ends the round: the score is applied
// and either a fresh round is dealt or the game finishes.
func (g *Game) PlayCard(seat int, card Card) (PlayResult, error) {
	if g.Phase == PhaseFinished {
		return PlayResult{}, errGameOver()
	}
	if g.Phase != PhasePlaying {
		return PlayResult{}, newRulesError(CodePhase, "no card play in phase %s", g.Phase)
	}
	if err := g.checkSeat(seat); err != nil {
		return PlayResult{}, err
	}
	if seat != g.Turn {
		return PlayResult{}, newRulesError(CodeTurn, "seat %d acted on seat %d's turn", seat, g.Turn)
	}
	if err := g.Players[seat].Play(card); err != nil {
		return PlayResult{}, err
	}

	g.CurrentTrick.Add(seat, card)
	g.Turn = nextSeat(g.Turn)

	res := PlayResult{NextTurn: g.Turn}
	if len(g.CurrentTrick.Plays) < NumSeats {
		return res, nil
	}

	led := g.CurrentTrick.Plays[0].Card.Suit
	winner, err := g.CurrentTrick.Winner(led, g.Trump)
	if err != nil {
		return PlayResult{}, err
	}
	g.Tricks[TeamOfSeat(winner)]++
	g.CurrentTrick = Trick{}
	g.Turn = winner

	res.TrickDone = true
	res.TrickWinner = winner
	res.Tricks = g.Tricks
	res.NextTurn = winner

	if g.Tricks[0]+g.Tricks[1] < TricksPerRound {
		return res, nil
	}

	res.RoundDone = true
	team, points, err := g.endRound()
	if err != nil {
		return PlayResult{}, err
	}
	res.ScoringTeam = team
	res.Points = points
	res.GameOver = g.Phase == PhaseFinished
	if !res.GameOver {
		res.NextTurn = g.Turn
	}
	return res, nil
}

// endRound applies the scoring rule, then either finishes the game or
// starts the next round. It reports which team scored and how much.
func (g *Game) endRound() (int, int, error) {
	team, points, err := scoreRound(g.Tricks, g.Maker)
	if err != nil {
		return 0, 0, err
	}
	g.Scores[team] += points
	if g.Scores[team] >= g.Target {
		g.Phase = PhaseFinished
		return team, points, nil
	}
	return team, points, g.startRound()
}

// scoreRound resolves a completed round: a march (all five tricks) scores
// the maker two points, three or four tricks score one, and two or fewer
// tricks hand the defenders one point (the maker was euchred).
func scoreRound(tricks [NumTeams]int, maker int) (team, points int, err error) {
	if tricks[0]+tricks[1] != TricksPerRound || maker < 0 || maker >= NumTeams {
		return 0, 0, newInvariantError("round ended with tricks %v and maker %d", tricks, maker)
	}
	defenders := 1 - maker
	switch {
	case tricks[maker] == TricksPerRound:
		return maker, 2, nil
	case tricks[maker] >= 3:
		return maker, 1, nil
	default:
		return defenders, 1, nil
	}
}

func (g *Game) checkSeat(seat int) error {
	if seat < 0 || seat >= len(g.Players) {
		return newRulesError(CodeSetup, "unknown seat %d", seat)
	}
	return nil
}

// CurrentPhase returns the lifecycle stage of the game.
func (g *Game) CurrentPhase() Phase { return g.Phase }

// CurrentTurn returns the seat expected to act next.
func (g *Game) CurrentTurn() int { return g.Turn }

// DealerSeat returns the dealer of the round in progress.
func (g *Game) DealerSeat() int { return g.Dealer }

// TrumpSuit returns the round's trump suit, if bidding has set one.
func (g *Game) TrumpSuit() (Suit, bool) { return g.Trump, g.trumpSet }

// MakerTeam returns the team that named trump this round, if any.
func (g *Game) MakerTeam() (int, bool) { return g.Maker, g.Maker >= 0 }

// TeamScore returns a team's cumulative game score.
func (g *Game) TeamScore(team int) int { return g.Scores[team] }

// TeamTricks returns a team's trick wins in the round in progress.
func (g *Game) TeamTricks(team int) int { return g.Tricks[team] }

// WinningTeam returns the team that reached the target score once the game
// is finished.
func (g *Game) WinningTeam() (int, bool) {
	for team, score := range g.Scores {
		if score >= g.Target {
			return team, true
		}
	}
	return 0, false
}

// TableCards returns a copy of the cards on the table for the trick in
// progress, in play order.
func (g *Game) TableCards() []PlayedCard {
	return append([]PlayedCard(nil), g.CurrentTrick.Plays...)
}

// PlayerHand returns a copy of the seat's hand.
func (g *Game) PlayerHand(seat int) []Card {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return append([]Card(nil), g.Players[seat].Hand...)
}

// PlayerName returns the name registered for the seat.
func (g *Game) PlayerName(seat int) string {
	if seat < 0 || seat >= len(g.Players) {
		return ""
	}
	return g.Players[seat].Name
}

// SeatCount returns the number of registered players.
func (g *Game) SeatCount() int { return len(g.Players) }
