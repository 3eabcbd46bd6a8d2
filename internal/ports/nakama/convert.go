package nakama

import (
	"fmt"

	"euchre/internal/app"
	"euchre/internal/domain"
)

// Wire messages use the compact card codes ("JS", "10H") split into suit and
// rank so clients do not parse concatenated strings.
type wireCard struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// Client -> server payloads.

type submitBidRequest struct {
	Action string `json:"action"`
	Suit   string `json:"suit,omitempty"` // required for "call"
}

type submitDiscardRequest struct {
	Card wireCard `json:"card"`
}

type playCardRequest struct {
	Card wireCard `json:"card"`
}

// Server -> client event payloads.

type playerJoinedEvent struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
	Team int    `json:"team"`
}

type playerLeftEvent struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
}

type roundStartedEvent struct {
	Dealer      int                  `json:"dealer"`
	TopCard     wireCard             `json:"top_card"`
	FirstBidder int                  `json:"first_bidder"`
	Scores      [domain.NumTeams]int `json:"scores"`
}

type handDealtEvent struct {
	Seat int        `json:"seat"`
	Hand []wireCard `json:"hand"`
}

type bidPlacedEvent struct {
	Seat     int    `json:"seat"`
	Action   string `json:"action"`
	Phase    string `json:"phase"`
	NextTurn int    `json:"next_turn"`
}

type trumpSelectedEvent struct {
	Trump          string `json:"trump"`
	MakerSeat      int    `json:"maker_seat"`
	MakerTeam      int    `json:"maker_team"`
	DealerDiscards bool   `json:"dealer_discards"`
	NextTurn       int    `json:"next_turn"`
}

type dealerDiscardedEvent struct {
	Dealer    int `json:"dealer"`
	FirstTurn int `json:"first_turn"`
}

type cardPlayedEvent struct {
	Seat     int      `json:"seat"`
	Card     wireCard `json:"card"`
	NextTurn int      `json:"next_turn"`
}

type trickWonEvent struct {
	Winner int                  `json:"winner"`
	Tricks [domain.NumTeams]int `json:"tricks"`
}

type roundScoredEvent struct {
	Team   int                  `json:"team"`
	Points int                  `json:"points"`
	Scores [domain.NumTeams]int `json:"scores"`
}

type gameEndedEvent struct {
	WinningTeam int                  `json:"winning_team"`
	Scores      [domain.NumTeams]int `json:"scores"`
}

type gameErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type turnTimeoutEvent struct {
	Seat int `json:"seat"`
}

func cardToWire(c domain.Card) wireCard {
	return wireCard{Suit: c.Suit.Code(), Rank: c.Rank.Code()}
}

func cardsToWire(cards []domain.Card) []wireCard {
	out := make([]wireCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToWire(c))
	}
	return out
}

func cardFromWire(w wireCard) (domain.Card, error) {
	suit, ok := domain.SuitFromCode(w.Suit)
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown suit code %q", w.Suit)
	}
	rank, ok := domain.RankFromCode(w.Rank)
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown rank code %q", w.Rank)
	}
	return domain.Card{Suit: suit, Rank: rank}, nil
}

func bidFromWire(req submitBidRequest) (domain.Bid, error) {
	switch domain.BidAction(req.Action) {
	case domain.BidPass:
		return domain.Bid{Action: domain.BidPass}, nil
	case domain.BidOrderUp:
		return domain.Bid{Action: domain.BidOrderUp}, nil
	case domain.BidCall:
		suit, ok := domain.SuitFromCode(req.Suit)
		if !ok {
			return domain.Bid{}, fmt.Errorf("unknown suit code %q", req.Suit)
		}
		return domain.Bid{Action: domain.BidCall, Suit: suit}, nil
	default:
		return domain.Bid{}, fmt.Errorf("unknown bid action %q", req.Action)
	}
}

// eventToWire maps an app event onto its opcode and wire payload.
func eventToWire(ev app.Event) (int64, any, error) {
	switch ev.Kind {
	case app.EventPlayerJoined:
		p := ev.Payload.(app.PlayerJoinedPayload)
		return OpPlayerJoined, playerJoinedEvent{Seat: p.Seat, Name: p.Name, Team: p.Team}, nil
	case app.EventRoundStarted:
		p := ev.Payload.(app.RoundStartedPayload)
		return OpRoundStarted, roundStartedEvent{
			Dealer:      p.Dealer,
			TopCard:     cardToWire(p.TopCard),
			FirstBidder: p.FirstBidder,
			Scores:      p.Scores,
		}, nil
	case app.EventHandDealt:
		p := ev.Payload.(app.HandDealtPayload)
		return OpHandDealt, handDealtEvent{Seat: p.Seat, Hand: cardsToWire(p.Hand)}, nil
	case app.EventBidPlaced:
		p := ev.Payload.(app.BidPlacedPayload)
		return OpBidPlaced, bidPlacedEvent{
			Seat:     p.Seat,
			Action:   string(p.Action),
			Phase:    string(p.Phase),
			NextTurn: p.NextTurn,
		}, nil
	case app.EventTrumpSelected:
		p := ev.Payload.(app.TrumpSelectedPayload)
		return OpTrumpSelected, trumpSelectedEvent{
			Trump:          p.Trump.Code(),
			MakerSeat:      p.MakerSeat,
			MakerTeam:      p.MakerTeam,
			DealerDiscards: p.DealerDiscards,
			NextTurn:       p.NextTurn,
		}, nil
	case app.EventDealerDiscarded:
		p := ev.Payload.(app.DealerDiscardedPayload)
		return OpDealerDiscarded, dealerDiscardedEvent{Dealer: p.Dealer, FirstTurn: p.FirstTurn}, nil
	case app.EventCardPlayed:
		p := ev.Payload.(app.CardPlayedPayload)
		return OpCardPlayed, cardPlayedEvent{Seat: p.Seat, Card: cardToWire(p.Card), NextTurn: p.NextTurn}, nil
	case app.EventTrickWon:
		p := ev.Payload.(app.TrickWonPayload)
		return OpTrickWon, trickWonEvent{Winner: p.Winner, Tricks: p.Tricks}, nil
	case app.EventRoundScored:
		p := ev.Payload.(app.RoundScoredPayload)
		return OpRoundScored, roundScoredEvent{Team: p.Team, Points: p.Points, Scores: p.Scores}, nil
	case app.EventGameEnded:
		p := ev.Payload.(app.GameEndedPayload)
		return OpGameEnded, gameEndedEvent{WinningTeam: p.WinningTeam, Scores: p.Scores}, nil
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
