package game

import "errors"

// Precondition errors. Commands failing one of these are rejected before any
// state mutation.
var (
	ErrInvalidEmpire      = errors.New("invalid empire id")
	ErrOutOfBounds        = errors.New("coordinates out of bounds")
	ErrNotOwned           = errors.New("territory not owned")
	ErrWrongTerrain       = errors.New("cannot build on this terrain")
	ErrInsufficientFunds  = errors.New("not enough gold")
	ErrInsufficientUnits  = errors.New("not enough units")
	ErrInsufficientPeople = errors.New("not enough population")
	ErrNavyCapacity       = errors.New("not enough naval capacity")
	ErrNotSea             = errors.New("destination is not sea")
	ErrSeaDestination     = errors.New("cannot move onto sea")
	ErrNoAdjacentLand     = errors.New("no adjacent owned land")
	ErrNoAdjacentSea      = errors.New("no adjacent sea tile")
	ErrNothingToSell      = errors.New("nothing to sell")
	ErrRelationLocked     = errors.New("relations with that empire already changed this turn")
	ErrScienceRejected    = errors.New("could not advance science")
	ErrGameOver           = errors.New("game is over")
	ErrUnknownCommand     = errors.New("unknown command")
)
