package app

import "euchre/internal/domain"

// PlayersToStartGame is the number of occupied seats required before a game
// begins dealing. Euchre is always played four-handed.
const PlayersToStartGame = domain.NumSeats
