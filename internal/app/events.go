package app

import "euchre/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined    EventKind = "player_joined"
	EventRoundStarted    EventKind = "round_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventBidPlaced       EventKind = "bid_placed"
	EventTrumpSelected   EventKind = "trump_selected"
	EventDealerDiscarded EventKind = "dealer_discarded"
	EventCardPlayed      EventKind = "card_played"
	EventTrickWon        EventKind = "trick_won"
	EventRoundScored     EventKind = "round_scored"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // seat indices; empty means broadcast
}

type PlayerJoinedPayload struct {
	Seat int
	Name string
	Team int
}

type RoundStartedPayload struct {
	Dealer      int
	TopCard     domain.Card
	FirstBidder int
	Scores      [domain.NumTeams]int
}

type HandDealtPayload struct {
	Seat int
	Hand []domain.Card
}

type BidPlacedPayload struct {
	Seat     int
	Action   domain.BidAction
	Phase    domain.Phase // phase after the bid resolved
	NextTurn int
}

type TrumpSelectedPayload struct {
	Trump          domain.Suit
	MakerSeat      int
	MakerTeam      int
	DealerDiscards bool
	NextTurn       int
}

type DealerDiscardedPayload struct {
	Dealer    int
	FirstTurn int
}

type CardPlayedPayload struct {
	Seat     int
	Card     domain.Card
	NextTurn int
}

type TrickWonPayload struct {
	Winner int
	Tricks [domain.NumTeams]int
}

type RoundScoredPayload struct {
	Team   int
	Points int
	Scores [domain.NumTeams]int
}

type GameEndedPayload struct {
	WinningTeam int
	Scores      [domain.NumTeams]int
}
