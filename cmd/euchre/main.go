package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"euchre/internal/app"
	"euchre/internal/domain"
)

// Hot-seat table runner: four players share one terminal, each acting on
// their turn. Hands are printed only for the seat that is about to act.

func main() {
	target := flag.Int("target", 0, "winning score, 0 uses the standard ten")
	flag.Parse()

	_ = pterm.DefaultBigText.WithLetters(putils.LettersFromString("EUCHRE")).Render()

	svc := app.NewService(nil)
	game := svc.NewMatch(*target)

	for seat := 0; seat < domain.NumSeats; seat++ {
		name, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(fmt.Sprintf("Player %d", seat+1)).
			Show(fmt.Sprintf("Name for seat %d (team %d)", seat, domain.TeamOfSeat(seat)))
		_, events, err := svc.Join(game, name)
		if err != nil {
			pterm.Error.Printfln("Could not seat %s: %v", name, err)
			os.Exit(1)
		}
		renderEvents(game, events)
	}

	for game.CurrentPhase() != domain.PhaseFinished {
		if err := takeTurn(svc, game); err != nil {
			var rerr *domain.RulesError
			if errors.As(err, &rerr) {
				pterm.Error.Printfln("%s", rerr.Message)
				continue
			}
			pterm.Error.Printfln("Unrecoverable: %v", err)
			os.Exit(1)
		}
	}
}

// takeTurn prompts the acting seat and applies the chosen action.
func takeTurn(svc *app.Service, game *domain.Game) error {
	seat := game.CurrentTurn()

	switch game.CurrentPhase() {
	case domain.PhaseBiddingRound1:
		showHand(game, seat)
		orderUp := fmt.Sprintf("Order up %s", prettyCard(game.TopCard))
		choice, _ := pterm.DefaultInteractiveSelect.
			WithOptions([]string{"Pass", orderUp}).
			Show(fmt.Sprintf("%s, your bid", game.PlayerName(seat)))
		bid := domain.Bid{Action: domain.BidPass}
		if choice == orderUp {
			bid = domain.Bid{Action: domain.BidOrderUp}
		}
		events, err := svc.SubmitBid(game, seat, bid)
		renderEvents(game, events)
		return err

	case domain.PhaseBiddingRound2:
		showHand(game, seat)
		options := []string{}
		if seat != game.DealerSeat() {
			options = append(options, "Pass")
		}
		suits := []domain.Suit{}
		for _, s := range []domain.Suit{domain.Spades, domain.Hearts, domain.Diamonds, domain.Clubs} {
			if s != game.TopCard.Suit {
				options = append(options, fmt.Sprintf("Call %s", prettySuit(s)))
				suits = append(suits, s)
			}
		}
		choice, _ := pterm.DefaultInteractiveSelect.
			WithOptions(options).
			Show(fmt.Sprintf("%s, your bid (the %s was turned down)", game.PlayerName(seat), prettySuit(game.TopCard.Suit)))
		bid := domain.Bid{Action: domain.BidPass}
		for i, s := range suits {
			if choice == fmt.Sprintf("Call %s", prettySuit(s)) {
				bid = domain.Bid{Action: domain.BidCall, Suit: suits[i]}
				break
			}
		}
		events, err := svc.SubmitBid(game, seat, bid)
		renderEvents(game, events)
		return err

	case domain.PhaseDealerDiscard:
		hand := game.PlayerHand(seat)
		card := pickCard(hand, fmt.Sprintf("%s, pick a card to discard", game.PlayerName(seat)))
		events, err := svc.SubmitDiscard(game, seat, card)
		renderEvents(game, events)
		return err

	case domain.PhasePlaying:
		showTrick(game)
		hand := game.PlayerHand(seat)
		card := pickCard(hand, fmt.Sprintf("%s, play a card", game.PlayerName(seat)))
		events, err := svc.PlayCard(game, seat, card)
		renderEvents(game, events)
		return err

	default:
		return fmt.Errorf("no input expected in phase %s", game.CurrentPhase())
	}
}

// pickCard runs a select over the hand and returns the chosen card.
func pickCard(hand []domain.Card, prompt string) domain.Card {
	options := make([]string, len(hand))
	for i, c := range hand {
		options[i] = prettyCard(c)
	}
	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).Show(prompt)
	for i, opt := range options {
		if opt == choice {
			return hand[i]
		}
	}
	return hand[0]
}

func renderEvents(game *domain.Game, events []app.Event) {
	for _, ev := range events {
		switch payload := ev.Payload.(type) {
		case app.PlayerJoinedPayload:
			pterm.Info.Printfln("%s sits at seat %d for team %d.", payload.Name, payload.Seat, payload.Team)
		case app.RoundStartedPayload:
			pterm.DefaultSection.Printfln("New round. %s deals, %s turned up. Score %d-%d.",
				game.PlayerName(payload.Dealer), prettyCard(payload.TopCard), payload.Scores[0], payload.Scores[1])
		case app.BidPlacedPayload:
			if payload.Action == domain.BidPass {
				pterm.Println(pterm.Gray(fmt.Sprintf("%s passes.", game.PlayerName(payload.Seat))))
			}
		case app.TrumpSelectedPayload:
			pterm.Success.Printfln("%s names %s trump for team %d.",
				game.PlayerName(payload.MakerSeat), prettySuit(payload.Trump), payload.MakerTeam)
		case app.DealerDiscardedPayload:
			pterm.Info.Printfln("%s picked up and discarded.", game.PlayerName(payload.Dealer))
		case app.CardPlayedPayload:
			pterm.Printfln("%s plays %s.", game.PlayerName(payload.Seat), prettyCard(payload.Card))
		case app.TrickWonPayload:
			pterm.Info.Printfln("%s takes the trick (%d-%d).",
				game.PlayerName(payload.Winner), payload.Tricks[0], payload.Tricks[1])
		case app.RoundScoredPayload:
			pterm.Success.Printfln("Team %d scores %d. Totals: %d-%d.",
				payload.Team, payload.Points, payload.Scores[0], payload.Scores[1])
		case app.GameEndedPayload:
			pterm.DefaultBox.WithTitle("Game over").Printfln("Team %d wins %d-%d!",
				payload.WinningTeam, payload.Scores[0], payload.Scores[1])
		}
	}
}

func showHand(game *domain.Game, seat int) {
	hand := game.PlayerHand(seat)
	cards := make([]string, len(hand))
	for i, c := range hand {
		cards[i] = prettyCard(c)
	}
	pterm.Println(pterm.Cyan(fmt.Sprintf("Your hand: %v", cards)))
}

func showTrick(game *domain.Game) {
	table := game.TableCards()
	if len(table) == 0 {
		return
	}
	parts := make([]string, len(table))
	for i, pc := range table {
		parts[i] = fmt.Sprintf("%s:%s", game.PlayerName(pc.Seat), prettyCard(pc.Card))
	}
	pterm.Println(pterm.Gray(fmt.Sprintf("On the table: %v", parts)))
}

var suitSymbols = map[domain.Suit]string{
	domain.Spades:   "♠",
	domain.Hearts:   "♥",
	domain.Diamonds: "♦",
	domain.Clubs:    "♣",
}

func prettyCard(c domain.Card) string {
	return c.Rank.Code() + suitSymbols[c.Suit]
}

func prettySuit(s domain.Suit) string {
	return s.String() + " " + suitSymbols[s]
}
