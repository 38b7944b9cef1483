package sim

import "errors"

var (
	ErrNoKeys        = errors.New("sim: no keys to insert")
	ErrTableTooLarge = errors.New("sim: table size exceeds the maximum")
)
