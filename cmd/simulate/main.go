package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"euchre/internal/app"
	"euchre/internal/domain"
)

// Self-play smoke runner: four random-legal players drive full games through
// the app service, checking that every game terminates cleanly.

var seatNames = []string{"north", "east", "south", "west"}

func main() {
	games := flag.Int("games", 10, "number of games to simulate")
	seed := flag.Int64("seed", 0, "rng seed, 0 uses the current time")
	target := flag.Int("target", 0, "winning score, 0 uses the standard ten")
	verbose := flag.Bool("v", false, "log every event")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Info().Int64("seed", *seed).Int("games", *games).Msg("starting self-play")

	var wins [domain.NumTeams]int
	for i := 0; i < *games; i++ {
		gameLog := logger.With().Int("game", i+1).Logger()
		winner, scores, rounds, err := runGame(gameLog, rng, *target)
		if err != nil {
			gameLog.Error().Err(err).Msg("game aborted")
			os.Exit(1)
		}
		wins[winner]++
		gameLog.Info().
			Int("winner", winner).
			Int("rounds", rounds).
			Str("score", fmt.Sprintf("%d-%d", scores[0], scores[1])).
			Msg("game finished")
	}

	logger.Info().
		Int("team0_wins", wins[0]).
		Int("team1_wins", wins[1]).
		Msg("self-play complete")
}

// runGame plays one full game with random legal actions.
func runGame(logger zerolog.Logger, rng *rand.Rand, target int) (int, [domain.NumTeams]int, int, error) {
	svc := app.NewService(rng)
	game := svc.NewMatch(target)

	for _, name := range seatNames {
		if _, _, err := svc.Join(game, name); err != nil {
			return 0, [domain.NumTeams]int{}, 0, err
		}
	}

	rounds := 0
	prevDealer := game.DealerSeat()
	maxActions := 10000
	for act := 0; act < maxActions; act++ {
		if game.CurrentPhase() == domain.PhaseFinished {
			winner, ok := game.WinningTeam()
			if !ok {
				return 0, [domain.NumTeams]int{}, 0, fmt.Errorf("finished game has no winner")
			}
			scores := [domain.NumTeams]int{game.TeamScore(0), game.TeamScore(1)}
			return winner, scores, rounds, nil
		}

		events, err := step(svc, game, rng)
		if err != nil {
			return 0, [domain.NumTeams]int{}, 0, err
		}
		for _, ev := range events {
			switch payload := ev.Payload.(type) {
			case app.TrickWonPayload:
				if sum := payload.Tricks[0] + payload.Tricks[1]; sum > domain.TricksPerRound {
					return 0, [domain.NumTeams]int{}, 0, fmt.Errorf("trick counts overflow: %v", payload.Tricks)
				}
			case app.RoundScoredPayload:
				rounds++
				logger.Debug().
					Int("team", payload.Team).
					Int("points", payload.Points).
					Str("score", fmt.Sprintf("%d-%d", payload.Scores[0], payload.Scores[1])).
					Msg("round scored")
			case app.RoundStartedPayload:
				if rounds > 0 && payload.Dealer != (prevDealer+1)%domain.NumSeats {
					return 0, [domain.NumTeams]int{}, 0, fmt.Errorf("dealer jumped from %d to %d", prevDealer, payload.Dealer)
				}
				prevDealer = payload.Dealer
			default:
				logger.Debug().Str("event", string(ev.Kind)).Msg("emitted")
			}
		}
	}
	return 0, [domain.NumTeams]int{}, 0, fmt.Errorf("game exceeded %d actions without finishing", maxActions)
}

// step takes one random legal action for the seat whose turn it is.
func step(svc *app.Service, game *domain.Game, rng *rand.Rand) ([]app.Event, error) {
	seat := game.CurrentTurn()

	switch game.CurrentPhase() {
	case domain.PhaseBiddingRound1:
		bid := domain.Bid{Action: domain.BidPass}
		if rng.Intn(4) == 0 {
			bid = domain.Bid{Action: domain.BidOrderUp}
		}
		return svc.SubmitBid(game, seat, bid)

	case domain.PhaseBiddingRound2:
		suits := callableSuits(game.TopCard.Suit)
		if seat == game.DealerSeat() || rng.Intn(3) == 0 {
			return svc.SubmitBid(game, seat, domain.Bid{
				Action: domain.BidCall,
				Suit:   suits[rng.Intn(len(suits))],
			})
		}
		return svc.SubmitBid(game, seat, domain.Bid{Action: domain.BidPass})

	case domain.PhaseDealerDiscard:
		hand := game.PlayerHand(seat)
		return svc.SubmitDiscard(game, seat, hand[rng.Intn(len(hand))])

	case domain.PhasePlaying:
		hand := game.PlayerHand(seat)
		return svc.PlayCard(game, seat, hand[rng.Intn(len(hand))])

	default:
		return nil, fmt.Errorf("no action for phase %s", game.CurrentPhase())
	}
}

// callableSuits lists the suits available in the second bidding round, which
// excludes the turned-down suit.
func callableSuits(top domain.Suit) []domain.Suit {
	all := []domain.Suit{domain.Spades, domain.Hearts, domain.Diamonds, domain.Clubs}
	out := make([]domain.Suit, 0, len(all)-1)
	for _, s := range all {
		if s != top {
			out = append(out, s)
		}
	}
	return out
}
