package nakama

import (
	"testing"

	"github.com/stretchr/testify/require"

	"euchre/internal/app"
	"euchre/internal/domain"
)

func TestCardFromWire(t *testing.T) {
	card, err := cardFromWire(wireCard{Suit: "H", Rank: "10"})
	require.NoError(t, err)
	require.Equal(t, domain.Card{Suit: domain.Hearts, Rank: domain.Ten}, card)

	_, err = cardFromWire(wireCard{Suit: "X", Rank: "9"})
	require.Error(t, err)
	_, err = cardFromWire(wireCard{Suit: "S", Rank: "2"})
	require.Error(t, err)
}

func TestBidFromWire(t *testing.T) {
	bid, err := bidFromWire(submitBidRequest{Action: "call", Suit: "D"})
	require.NoError(t, err)
	require.Equal(t, domain.Bid{Action: domain.BidCall, Suit: domain.Diamonds}, bid)

	_, err = bidFromWire(submitBidRequest{Action: "call", Suit: ""})
	require.Error(t, err, "a call needs a suit")

	bid, err = bidFromWire(submitBidRequest{Action: "order_up"})
	require.NoError(t, err)
	require.Equal(t, domain.BidOrderUp, bid.Action)

	_, err = bidFromWire(submitBidRequest{Action: "raise"})
	require.Error(t, err)
}

func TestEventToWireCoversAllKinds(t *testing.T) {
	events := []app.Event{
		{Kind: app.EventPlayerJoined, Payload: app.PlayerJoinedPayload{}},
		{Kind: app.EventRoundStarted, Payload: app.RoundStartedPayload{}},
		{Kind: app.EventHandDealt, Payload: app.HandDealtPayload{}},
		{Kind: app.EventBidPlaced, Payload: app.BidPlacedPayload{}},
		{Kind: app.EventTrumpSelected, Payload: app.TrumpSelectedPayload{}},
		{Kind: app.EventDealerDiscarded, Payload: app.DealerDiscardedPayload{}},
		{Kind: app.EventCardPlayed, Payload: app.CardPlayedPayload{}},
		{Kind: app.EventTrickWon, Payload: app.TrickWonPayload{}},
		{Kind: app.EventRoundScored, Payload: app.RoundScoredPayload{}},
		{Kind: app.EventGameEnded, Payload: app.GameEndedPayload{}},
	}

	seen := make(map[int64]bool)
	for _, ev := range events {
		opCode, payload, err := eventToWire(ev)
		require.NoError(t, err, "kind %s", ev.Kind)
		require.NotNil(t, payload)
		require.False(t, seen[opCode], "opcode %d reused", opCode)
		seen[opCode] = true
	}

	_, _, err := eventToWire(app.Event{Kind: "mystery"})
	require.Error(t, err)
}
