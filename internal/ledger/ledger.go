// Package ledger holds the authoritative record of vehicles currently on the
// highway plus the aggregate usage counters derived from completed trips.
//
// The ledger is the only shared mutable state in the server. Every read and
// every write goes through one exclusive mutex; the presence check and the
// map mutation for a plate are a single critical section, so no two
// transactions can interleave on the same plate.
package ledger

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrDuplicateEntry  = errors.New("ledger: vehicle already in highway")
	ErrVehicleNotFound = errors.New("ledger: vehicle not found in highway")
)

// Ledger maps plates to their entry toll point and accumulates completed-trip
// totals. The zero value is not usable; construct with New.
type Ledger struct {
	mu        sync.Mutex
	entries   map[string]int
	completed uint64
	totalFees float64
}

// Snapshot is one internally consistent read of the ledger, taken under a
// single lock acquisition.
type Snapshot struct {
	OnHighway int
	Completed uint64
	TotalFees float64
}

// Vehicle is one present vehicle as exposed on the admin surface.
type Vehicle struct {
	Plate      string `json:"plate"`
	EntryPoint int    `json:"entry_point"`
}

func New() *Ledger {
	return &Ledger{
		entries: make(map[string]int),
	}
}

// TryEnter records the vehicle as present at the given toll point. It fails
// with ErrDuplicateEntry when the plate is already on the highway, leaving
// the stored entry point unchanged.
func (l *Ledger) TryEnter(plate string, point int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[plate]; ok {
		return ErrDuplicateEntry
	}
	l.entries[plate] = point
	return nil
}

// TryExit removes the vehicle and settles its trip: the fee is computed from
// the recorded entry point, the completed counter moves by one and the fee is
// added to the running total, all as one unit. It fails with
// ErrVehicleNotFound when the plate is not on the highway.
func (l *Ledger) TryExit(plate string, point int) (entryPoint int, fee float64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entryPoint, ok := l.entries[plate]
	if !ok {
		return 0, 0, ErrVehicleNotFound
	}
	delete(l.entries, plate)
	fee = Fee(entryPoint, point)
	l.completed++
	l.totalFees += fee
	return entryPoint, fee, nil
}

// Snapshot reads the current size and both aggregate counters under one lock
// acquisition.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		OnHighway: len(l.entries),
		Completed: l.completed,
		TotalFees: l.totalFees,
	}
}

// Vehicles returns a sorted copy of the vehicles currently on the highway.
func (l *Ledger) Vehicles() []Vehicle {
	l.mu.Lock()
	list := make([]Vehicle, 0, len(l.entries))
	for plate, point := range l.entries {
		list = append(list, Vehicle{Plate: plate, EntryPoint: point})
	}
	l.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Plate < list[j].Plate
	})
	return list
}
