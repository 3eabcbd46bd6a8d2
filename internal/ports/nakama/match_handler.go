package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"euchre/internal/app"
	"euchre/internal/config"
	"euchre/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label
)

// matchLabel is published to the match registry so quick_match can filter on
// open seats and game state.
type matchLabel struct {
	Open  int    `json:"open"`
	State string `json:"state"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats        [domain.NumSeats]string     `json:"seats"`         // Array of user IDs, empty string means seat is empty
	Tick         int64                       `json:"tick"`          // Current tick of the match for turn-based logic
	TurnDeadline int64                       `json:"turn_deadline"` // Tick at which the current turn times out, 0 means untimed
	Presences    map[string]runtime.Presence `json:"-"`             // Map UserId -> Presence for targeted messaging
	App          *app.Service                `json:"-"`             // Euchre app service with game logic
	Game         *domain.Game                `json:"-"`             // Authoritative game state
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// seatOf returns the seat index occupied by the user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID == userID {
			return i
		}
	}
	return -1
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	svc := app.NewService(nil)
	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       svc,
		Game:      svc.NewMatch(config.GetTargetScore()),
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: string(state.Game.CurrentPhase()),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second for turn timers
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects keep their seat; new users need an open one.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Reconnecting user: re-send their private hand and move on.
		if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
			logger.Debug("MatchJoin: User %s reconnected to seat %d.", p.GetUserId(), seat)
			mh.sendHand(matchState, dispatcher, logger, seat)
			continue
		}

		name := p.GetUsername()
		if name == "" {
			name = p.GetUserId()
		}
		seat, events, err := matchState.App.Join(matchState.Game, name)
		if err != nil {
			logger.Warn("MatchJoin: User %s could not be seated: %v", p.GetUserId(), err)
			continue
		}
		matchState.Seats[seat] = p.GetUserId()
		logger.Info("MatchJoin: User %s seated at %d (team %d).", p.GetUserId(), seat, domain.TeamOfSeat(seat))

		mh.dispatchEvents(matchState, dispatcher, logger, events)
	}

	if matchState.Game.CurrentPhase() != domain.PhaseAwaitingPlayers {
		mh.resetTurnDeadline(matchState)
	}
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Seats are
// permanent once dealt, so a leaver keeps their seat for reconnection; the
// match only terminates when nobody is connected.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}
		logger.Debug("MatchLeave: User %s (seat %d) disconnected.", p.GetUserId(), seat)
		mh.broadcast(dispatcher, logger, OpPlayerLeft, playerLeftEvent{
			Seat: seat,
			Name: matchState.Game.PlayerName(seat),
		}, nil)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		var err error
		switch msg.GetOpCode() {
		case OpSubmitBid:
			err = mh.handleSubmitBid(matchState, dispatcher, logger, msg)
		case OpSubmitDiscard:
			err = mh.handleSubmitDiscard(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			err = mh.handlePlayCard(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}

		var ierr *domain.InvariantError
		if errors.As(err, &ierr) {
			// The game state is no longer trustworthy.
			logger.Error("MatchLoop: Invariant violated, terminating match: %v", ierr)
			return nil
		}
	}

	mh.checkTurnTimeout(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) handleSubmitBid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) error {
	seat := state.seatOf(msg.GetUserId())

	var req submitBidRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleSubmitBid: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", "invalid bid payload")
		return nil
	}
	bid, err := bidFromWire(req)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", err.Error())
		return nil
	}

	events, err := state.App.SubmitBid(state.Game, seat, bid)
	if err != nil {
		return mh.reportActionError(state, dispatcher, logger, msg.GetUserId(), seat, err)
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.resetTurnDeadline(state)
	mh.updateLabel(state, dispatcher, logger)
	return nil
}

func (mh *matchHandler) handleSubmitDiscard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) error {
	seat := state.seatOf(msg.GetUserId())

	var req submitDiscardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleSubmitDiscard: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", "invalid discard payload")
		return nil
	}
	card, err := cardFromWire(req.Card)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", err.Error())
		return nil
	}

	events, err := state.App.SubmitDiscard(state.Game, seat, card)
	if err != nil {
		return mh.reportActionError(state, dispatcher, logger, msg.GetUserId(), seat, err)
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.resetTurnDeadline(state)
	mh.updateLabel(state, dispatcher, logger)
	return nil
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) error {
	seat := state.seatOf(msg.GetUserId())

	var req playCardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlayCard: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", "invalid play payload")
		return nil
	}
	card, err := cardFromWire(req.Card)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "payload", err.Error())
		return nil
	}

	events, err := state.App.PlayCard(state.Game, seat, card)
	if err != nil {
		return mh.reportActionError(state, dispatcher, logger, msg.GetUserId(), seat, err)
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.resetTurnDeadline(state)
	mh.updateLabel(state, dispatcher, logger)
	return nil
}

// reportActionError sends rule violations back to the offending user. Any
// other error propagates so the loop can decide whether to terminate.
func (mh *matchHandler) reportActionError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, seat int, err error) error {
	var rerr *domain.RulesError
	if errors.As(err, &rerr) {
		logger.Warn("Rejected action from %s (seat %d): %v", userID, seat, rerr)
		mh.sendError(state, dispatcher, logger, userID, string(rerr.Code), rerr.Message)
		return nil
	}
	return err
}

// checkTurnTimeout announces when the acting seat has exceeded the configured
// turn duration. The game stays untouched; clients decide how to react.
func (mh *matchHandler) checkTurnTimeout(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.TurnDeadline == 0 || state.Tick < state.TurnDeadline {
		return
	}
	phase := state.Game.CurrentPhase()
	if phase == domain.PhaseAwaitingPlayers || phase == domain.PhaseFinished {
		state.TurnDeadline = 0
		return
	}

	seat := state.Game.CurrentTurn()
	logger.Info("checkTurnTimeout: Seat %d timed out in phase %s.", seat, phase)
	mh.broadcast(dispatcher, logger, OpTurnTimeout, turnTimeoutEvent{Seat: seat}, nil)
	mh.resetTurnDeadline(state)
}

// resetTurnDeadline re-arms the turn timer from the current tick.
func (mh *matchHandler) resetTurnDeadline(state *MatchState) {
	duration := config.GetTurnDurationSeconds()
	if duration <= 0 {
		state.TurnDeadline = 0
		return
	}
	state.TurnDeadline = state.Tick + int64(duration)
}

// dispatchEvents converts app events to wire messages and sends them.
// Targeted events go only to the connected presences of their seats and are
// dropped entirely when none are connected.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, payload, err := eventToWire(ev)
		if err != nil {
			logger.Error("dispatchEvents: %v", err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, seat := range ev.Recipients {
				userID := state.Seats[seat]
				if p, ok := state.Presences[userID]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		mh.broadcast(dispatcher, logger, opCode, payload, recipients)
	}
}

// sendHand re-sends a seat's private hand, used on reconnect.
func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	hand := state.Game.PlayerHand(seat)
	if len(hand) == 0 {
		return
	}
	p, ok := state.Presences[state.Seats[seat]]
	if !ok {
		return
	}
	mh.broadcast(dispatcher, logger, OpHandDealt, handDealtEvent{
		Seat: seat,
		Hand: cardsToWire(hand),
	}, []runtime.Presence{p})
}

// sendError sends a gameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, code, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	mh.broadcast(dispatcher, logger, OpGameError, gameErrorEvent{Code: code, Message: message}, []runtime.Presence{presence})
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []runtime.Presence) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal payload for opcode %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: string(state.Game.CurrentPhase()),
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
