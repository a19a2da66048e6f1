package seat

import "errors"

var (
	errSeatOutOfRange   = errors.New("seat: index out of range")
	errSeatTaken        = errors.New("seat: already occupied")
	errTableFull        = errors.New("seat: table full")
	errNotEnoughPlayers = errors.New("seat: fewer than two eligible players")
)
