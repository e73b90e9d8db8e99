package engine

import "errors"

var ErrUnknownMode = errors.New("unknown draft mode")
var ErrNegativePicks = errors.New("pick count must be non-negative")

type Team string

const (
	TeamLight Team = "Light"
	TeamDark  Team = "Dark"
)

type Mode string

const (
	ModeSimple     Mode = "simple"
	ModeSerpentine Mode = "serpentine"
)

// Opponent returns the other side.
func Opponent(t Team) Team {
	if t == TeamLight {
		return TeamDark
	}
	return TeamLight
}

// PickOrder computes which side picks at each slot of the draft. It is pure:
// the frontend runs the same computation locally and both must agree without
// a round trip per pick.
//
// Simple mode alternates strictly starting with firstPicker. Serpentine mode
// groups picks into rounds of two and reverses the odd rounds, giving the
// snake pattern A,B,B,A,A,B,B,A. With an odd pick count the raw snake can
// hand the extra skater to the second picker; the last slot is forced back
// to firstPicker so the side that picked first never ends up short.
func PickOrder(numPicks int, firstPicker Team, mode Mode) ([]Team, error) {
	if numPicks < 0 {
		return nil, ErrNegativePicks
	}
	secondPicker := Opponent(firstPicker)
	order := make([]Team, 0, numPicks)

	switch mode {
	case ModeSimple:
		for i := 0; i < numPicks; i++ {
			if i%2 == 0 {
				order = append(order, firstPicker)
			} else {
				order = append(order, secondPicker)
			}
		}
	case ModeSerpentine:
		for i := 0; i < numPicks; i++ {
			round := i / 2
			pickInRound := i % 2
			if round%2 == 1 {
				// Odd rounds run in reverse order.
				if pickInRound == 0 {
					order = append(order, secondPicker)
				} else {
					order = append(order, firstPicker)
				}
			} else {
				if pickInRound == 0 {
					order = append(order, firstPicker)
				} else {
					order = append(order, secondPicker)
				}
			}
		}
		if numPicks%2 != 0 {
			firstCount := 0
			for _, t := range order {
				if t == firstPicker {
					firstCount++
				}
			}
			if firstCount < numPicks-firstCount {
				order[numPicks-1] = firstPicker
			}
		}
	default:
		return nil, ErrUnknownMode
	}

	return order, nil
}
