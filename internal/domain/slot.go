package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidSlotGrid returned for a grid that cannot produce slots
var ErrInvalidSlotGrid = errors.New("domain: invalid slot grid")

// SlotGrid daily sequence of bookable start times
type SlotGrid struct {
	Open            types.TimeString
	Close           types.TimeString
	IntervalMinutes int
}

// DefaultSlotGrid returns 09:00-21:00 with a 60 minute step
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		Open:            DefaultSlotsOpen,
		Close:           DefaultSlotsClose,
		IntervalMinutes: DefaultIntervalMinutes,
	}
}

// NewSlotGrid parses and validates a grid
func NewSlotGrid(open, close string, intervalMinutes int) (SlotGrid, error) {
	openTime, err := types.NewTimeStringFromString(open)
	if err != nil {
		return SlotGrid{}, fmt.Errorf("%w: open: %v", ErrInvalidSlotGrid, err)
	}
	closeTime, err := types.NewTimeStringFromString(close)
	if err != nil {
		return SlotGrid{}, fmt.Errorf("%w: close: %v", ErrInvalidSlotGrid, err)
	}

	grid := SlotGrid{Open: openTime, Close: closeTime, IntervalMinutes: intervalMinutes}
	if err := grid.Validate(); err != nil {
		return SlotGrid{}, err
	}
	return grid, nil
}

// Validate checks the interval and the order of open and close
func (g SlotGrid) Validate() error {
	if g.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidSlotGrid)
	}
	if err := g.Open.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlotGrid, err)
	}
	if err := g.Close.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlotGrid, err)
	}
	if g.Close.IsBefore(g.Open) {
		return fmt.Errorf("%w: close %s is before open %s", ErrInvalidSlotGrid, g.Close, g.Open)
	}
	return nil
}

// Slots returns start times from Open to Close inclusive
func (g SlotGrid) Slots() []types.TimeString {
	if g.Validate() != nil {
		return nil
	}

	start, end := g.Open.Minutes(), g.Close.Minutes()
	slots := make([]types.TimeString, 0, (end-start)/g.IntervalMinutes+1)
	for m := start; m <= end; m += g.IntervalMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// Contains returns true if t is one of the grid slots
func (g SlotGrid) Contains(t types.TimeString) bool {
	if g.Validate() != nil {
		return false
	}
	m := t.Minutes()
	if m < g.Open.Minutes() || m > g.Close.Minutes() {
		return false
	}
	return (m-g.Open.Minutes())%g.IntervalMinutes == 0
}

// Subtract returns grid slots that are not in taken, order preserved
func (g SlotGrid) Subtract(taken []types.TimeString) []types.TimeString {
	occupied := make(map[types.TimeString]struct{}, len(taken))
	for _, t := range taken {
		occupied[t] = struct{}{}
	}

	slots := g.Slots()
	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, ok := occupied[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
