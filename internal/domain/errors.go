package domain

import "fmt"

// Code classifies a rules violation so the embedding layer can translate it
// into protocol-specific error responses without parsing messages.
type Code string

const (
	CodeSetup    Code = "setup"
	CodeHand     Code = "hand"
	CodeTurn     Code = "turn"
	CodeBidding  Code = "bidding"
	CodePhase    Code = "phase"
	CodeFinished Code = "finished"
)

// RulesError reports an action that is illegal in the current game state.
// The offending call leaves the game unchanged.
type RulesError struct {
	Code    Code
	Message string
}

func (e *RulesError) Error() string { return e.Message }

func newRulesError(code Code, format string, args ...any) *RulesError {
	return &RulesError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func errGameOver() *RulesError {
	return newRulesError(CodeFinished, "game is over")
}

// InvariantError reports an engine bug rather than a caller mistake.
// Embedders should alert on it instead of rejecting and continuing.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

func newInvariantError(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
