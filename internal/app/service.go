package app

import (
	"math/rand"
	"time"

	"euchre/internal/domain"
)

// Service contains Euchre use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// NewMatch creates a fresh game waiting for four players. A non-positive
// target falls back to the standard ten points.
func (s *Service) NewMatch(targetScore int) *domain.Game {
	if targetScore <= 0 {
		targetScore = domain.DefaultTargetScore
	}
	return domain.NewGame(targetScore, s.rng)
}

// Join seats a player. The fourth join deals the first round, so the
// returned events then include the round start and each seat's private hand.
func (s *Service) Join(game *domain.Game, name string) (int, []Event, error) {
	seat, err := game.RegisterPlayer(name)
	if err != nil {
		return -1, nil, err
	}

	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			Seat: seat,
			Name: name,
			Team: domain.TeamOfSeat(seat),
		},
	}}
	if game.CurrentPhase() == domain.PhaseBiddingRound1 {
		events = append(events, s.roundStartEvents(game)...)
	}
	return seat, events, nil
}

// SubmitBid applies a bid. When the bid selects trump, a trump_selected
// event follows the bid event.
func (s *Service) SubmitBid(game *domain.Game, seat int, bid domain.Bid) ([]Event, error) {
	if err := game.SubmitBid(seat, bid); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventBidPlaced,
		Payload: BidPlacedPayload{
			Seat:     seat,
			Action:   bid.Action,
			Phase:    game.CurrentPhase(),
			NextTurn: game.CurrentTurn(),
		},
	}}
	if trump, ok := game.TrumpSuit(); ok {
		maker, _ := game.MakerTeam()
		events = append(events, Event{
			Kind: EventTrumpSelected,
			Payload: TrumpSelectedPayload{
				Trump:          trump,
				MakerSeat:      seat,
				MakerTeam:      maker,
				DealerDiscards: game.CurrentPhase() == domain.PhaseDealerDiscard,
				NextTurn:       game.CurrentTurn(),
			},
		})
	}
	return events, nil
}

// SubmitDiscard applies the dealer's discard after an order-up. The discarded
// card stays private; the dealer's refreshed hand is re-sent only to them.
func (s *Service) SubmitDiscard(game *domain.Game, seat int, card domain.Card) ([]Event, error) {
	if err := game.SubmitDiscard(seat, card); err != nil {
		return nil, err
	}

	return []Event{
		{
			Kind: EventDealerDiscarded,
			Payload: DealerDiscardedPayload{
				Dealer:    seat,
				FirstTurn: game.CurrentTurn(),
			},
		},
		{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: game.PlayerHand(seat)},
			Recipients: []int{seat},
		},
	}, nil
}

// PlayCard applies a card play and emits the resulting events: the play
// itself, then trick, round and game transitions as they occur. When a round
// ends without finishing the game the next round's deal events are included.
func (s *Service) PlayCard(game *domain.Game, seat int, card domain.Card) ([]Event, error) {
	res, err := game.PlayCard(seat, card)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:     seat,
			Card:     card,
			NextTurn: res.NextTurn,
		},
	}}
	if res.TrickDone {
		events = append(events, Event{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{Winner: res.TrickWinner, Tricks: res.Tricks},
		})
	}
	if !res.RoundDone {
		return events, nil
	}

	events = append(events, Event{
		Kind: EventRoundScored,
		Payload: RoundScoredPayload{
			Team:   res.ScoringTeam,
			Points: res.Points,
			Scores: scores(game),
		},
	})
	if res.GameOver {
		winner, _ := game.WinningTeam()
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinningTeam: winner, Scores: scores(game)},
		})
		return events, nil
	}
	return append(events, s.roundStartEvents(game)...), nil
}

// roundStartEvents describes a freshly dealt round: the public deal facts
// plus one private hand event per seat.
func (s *Service) roundStartEvents(game *domain.Game) []Event {
	events := make([]Event, 0, domain.NumSeats+1)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Dealer:      game.DealerSeat(),
			TopCard:     game.TopCard,
			FirstBidder: game.CurrentTurn(),
			Scores:      scores(game),
		},
	})
	for seat := 0; seat < domain.NumSeats; seat++ {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: game.PlayerHand(seat)},
			Recipients: []int{seat},
		})
	}
	return events
}

func scores(game *domain.Game) [domain.NumTeams]int {
	var out [domain.NumTeams]int
	for team := 0; team < domain.NumTeams; team++ {
		out[team] = game.TeamScore(team)
	}
	return out
}
