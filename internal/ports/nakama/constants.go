package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match with open seats.
	RpcQuickMatch = "quick_match"

	// MatchNameEuchre is the authoritative match handler name registered with Nakama.
	MatchNameEuchre = "euchre_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSubmitBid     int64 = 1
	OpSubmitDiscard int64 = 2
	OpPlayCard      int64 = 3

	// Server -> Client events
	OpPlayerJoined    int64 = 101
	OpPlayerLeft      int64 = 102
	OpRoundStarted    int64 = 103
	OpHandDealt       int64 = 104 // send privately
	OpBidPlaced       int64 = 105
	OpTrumpSelected   int64 = 106
	OpDealerDiscarded int64 = 107
	OpCardPlayed      int64 = 108
	OpTrickWon        int64 = 109
	OpRoundScored     int64 = 110
	OpGameEnded       int64 = 111
	OpGameError       int64 = 112
	OpTurnTimeout     int64 = 113
)
