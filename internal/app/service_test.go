package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"euchre/internal/domain"
)

func seatedMatch(t *testing.T, seed int64) (*Service, *domain.Game) {
	t.Helper()
	svc := NewService(rand.New(rand.NewSource(seed)))
	game := svc.NewMatch(0)
	for i, name := range []string{"sam", "gwyn", "grace", "ryan"} {
		seat, _, err := svc.Join(game, name)
		require.NoError(t, err)
		require.Equal(t, i, seat)
	}
	return svc, game
}

// passToStuckDealer drives bidding to the forced dealer call and returns the
// events from the dealer's call.
func passToStuckDealer(t *testing.T, svc *Service, game *domain.Game) []Event {
	t.Helper()
	for i := 0; i < domain.NumSeats; i++ {
		_, err := svc.SubmitBid(game, game.CurrentTurn(), domain.Bid{Action: domain.BidPass})
		require.NoError(t, err)
	}
	for game.CurrentTurn() != game.DealerSeat() {
		_, err := svc.SubmitBid(game, game.CurrentTurn(), domain.Bid{Action: domain.BidPass})
		require.NoError(t, err)
	}
	evs, err := svc.SubmitBid(game, game.DealerSeat(), domain.Bid{
		Action: domain.BidCall,
		Suit:   game.TopCard.Suit.SameColor(),
	})
	require.NoError(t, err)
	return evs
}

func kindsOf(evs []Event) []EventKind {
	kinds := make([]EventKind, len(evs))
	for i, ev := range evs {
		kinds[i] = ev.Kind
	}
	return kinds
}

func TestNewMatchDefaultsTarget(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)))
	require.Equal(t, domain.DefaultTargetScore, svc.NewMatch(0).Target)
	require.Equal(t, 5, svc.NewMatch(5).Target)
}

func TestJoinDealsOnFourthSeat(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))
	game := svc.NewMatch(0)

	for _, name := range []string{"sam", "gwyn", "grace"} {
		_, evs, err := svc.Join(game, name)
		require.NoError(t, err)
		require.Equal(t, []EventKind{EventPlayerJoined}, kindsOf(evs))
	}

	_, evs, err := svc.Join(game, "ryan")
	require.NoError(t, err)
	require.Equal(t, []EventKind{
		EventPlayerJoined, EventRoundStarted,
		EventHandDealt, EventHandDealt, EventHandDealt, EventHandDealt,
	}, kindsOf(evs))

	started := evs[1].Payload.(RoundStartedPayload)
	require.Equal(t, domain.NumSeats-1, started.Dealer)
	require.Equal(t, 0, started.FirstBidder)
	require.Empty(t, evs[1].Recipients, "round start is public")

	for i, ev := range evs[2:] {
		payload := ev.Payload.(HandDealtPayload)
		require.Equal(t, i, payload.Seat)
		require.Len(t, payload.Hand, domain.HandSize)
		require.Equal(t, []int{i}, ev.Recipients, "hands are private to their seat")
	}
}

func TestJoinRejectsFifthPlayer(t *testing.T) {
	svc, game := seatedMatch(t, 42)
	_, evs, err := svc.Join(game, "intruder")
	var rerr *domain.RulesError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, domain.CodeSetup, rerr.Code)
	require.Empty(t, evs)
}

func TestSubmitBidEmitsTrumpSelection(t *testing.T) {
	svc, game := seatedMatch(t, 7)

	// A pass emits only the bid event.
	evs, err := svc.SubmitBid(game, 0, domain.Bid{Action: domain.BidPass})
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventBidPlaced}, kindsOf(evs))
	require.Equal(t, 1, evs[0].Payload.(BidPlacedPayload).NextTurn)

	// An order-up adds trump_selected and sends play to the dealer discard.
	evs, err = svc.SubmitBid(game, 1, domain.Bid{Action: domain.BidOrderUp})
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventBidPlaced, EventTrumpSelected}, kindsOf(evs))

	selected := evs[1].Payload.(TrumpSelectedPayload)
	require.Equal(t, game.TopCard.Suit, selected.Trump)
	require.Equal(t, 1, selected.MakerSeat)
	require.Equal(t, domain.TeamOfSeat(1), selected.MakerTeam)
	require.True(t, selected.DealerDiscards)
}

func TestStuckDealerCallStartsPlay(t *testing.T) {
	svc, game := seatedMatch(t, 7)
	evs := passToStuckDealer(t, svc, game)

	require.Equal(t, []EventKind{EventBidPlaced, EventTrumpSelected}, kindsOf(evs))
	selected := evs[1].Payload.(TrumpSelectedPayload)
	require.False(t, selected.DealerDiscards)
	require.Equal(t, domain.PhasePlaying, game.CurrentPhase())
}

func TestSubmitDiscardResendsDealerHand(t *testing.T) {
	svc, game := seatedMatch(t, 11)
	dealer := game.DealerSeat()

	_, err := svc.SubmitBid(game, game.CurrentTurn(), domain.Bid{Action: domain.BidOrderUp})
	require.NoError(t, err)

	evs, err := svc.SubmitDiscard(game, dealer, game.PlayerHand(dealer)[0])
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventDealerDiscarded, EventHandDealt}, kindsOf(evs))
	require.Empty(t, evs[0].Recipients)
	require.Equal(t, []int{dealer}, evs[1].Recipients)
	require.Len(t, evs[1].Payload.(HandDealtPayload).Hand, domain.HandSize)
}

func TestPlayCardEventFlow(t *testing.T) {
	svc, game := seatedMatch(t, 13)
	passToStuckDealer(t, svc, game)

	// First three plays of a trick emit only card_played.
	for i := 0; i < domain.NumSeats-1; i++ {
		seat := game.CurrentTurn()
		evs, err := svc.PlayCard(game, seat, game.PlayerHand(seat)[0])
		require.NoError(t, err)
		require.Equal(t, []EventKind{EventCardPlayed}, kindsOf(evs))
	}

	// The fourth closes the trick.
	seat := game.CurrentTurn()
	evs, err := svc.PlayCard(game, seat, game.PlayerHand(seat)[0])
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventCardPlayed, EventTrickWon}, kindsOf(evs))

	won := evs[1].Payload.(TrickWonPayload)
	require.Equal(t, 1, won.Tricks[0]+won.Tricks[1])
	require.Equal(t, won.Winner, game.CurrentTurn(), "trick winner leads next")
}

func TestPlayCardRoundAndGameTransitions(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(17)))
	game := svc.NewMatch(1)
	for _, name := range []string{"sam", "gwyn", "grace", "ryan"} {
		_, _, err := svc.Join(game, name)
		require.NoError(t, err)
	}

	var last []Event
	for i := 0; i < 50 && game.CurrentPhase() != domain.PhaseFinished; i++ {
		passToStuckDealer(t, svc, game)
		for game.CurrentPhase() == domain.PhasePlaying {
			seat := game.CurrentTurn()
			evs, err := svc.PlayCard(game, seat, game.PlayerHand(seat)[0])
			require.NoError(t, err)
			last = evs
		}
	}
	require.Equal(t, domain.PhaseFinished, game.CurrentPhase())

	kinds := kindsOf(last)
	require.Equal(t, []EventKind{EventCardPlayed, EventTrickWon, EventRoundScored, EventGameEnded}, kinds)

	scored := last[2].Payload.(RoundScoredPayload)
	ended := last[3].Payload.(GameEndedPayload)
	require.GreaterOrEqual(t, scored.Scores[scored.Team], scored.Points)
	require.GreaterOrEqual(t, ended.Scores[ended.WinningTeam], game.Target)
	winner, ok := game.WinningTeam()
	require.True(t, ok)
	require.Equal(t, winner, ended.WinningTeam)
}

func TestPlayCardRoundRolloverDealsNextRound(t *testing.T) {
	svc, game := seatedMatch(t, 19)
	passToStuckDealer(t, svc, game)

	var last []Event
	for game.CurrentPhase() == domain.PhasePlaying {
		seat := game.CurrentTurn()
		evs, err := svc.PlayCard(game, seat, game.PlayerHand(seat)[0])
		require.NoError(t, err)
		last = evs
	}

	require.Equal(t, []EventKind{
		EventCardPlayed, EventTrickWon, EventRoundScored,
		EventRoundStarted, EventHandDealt, EventHandDealt, EventHandDealt, EventHandDealt,
	}, kindsOf(last))
	require.Equal(t, domain.PhaseBiddingRound1, game.CurrentPhase())
	require.Equal(t, 0, last[3].Payload.(RoundStartedPayload).Dealer, "dealer rotated")
}

func TestRuleErrorsPassThroughWithoutEvents(t *testing.T) {
	svc, game := seatedMatch(t, 23)

	evs, err := svc.PlayCard(game, 0, domain.Card{Suit: domain.Spades, Rank: domain.Nine})
	var rerr *domain.RulesError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, domain.CodePhase, rerr.Code)
	require.Empty(t, evs)

	evs, err = svc.SubmitBid(game, 2, domain.Bid{Action: domain.BidPass})
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, domain.CodeTurn, rerr.Code)
	require.Empty(t, evs)
}
