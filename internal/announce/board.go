package announce

import (
	"time"

	"github.com/san-kum/fortune/internal/wheel"
)

// Board holds the live announcements in posting order.
type Board struct {
	timing  Timing
	entries []*Announcement
	nextID  int
}

func NewBoard(t Timing) *Board {
	return &Board{timing: t}
}

func (b *Board) Timing() Timing { return b.timing }

// Post adds an announcement for an outcome and returns it.
func (b *Board) Post(o wheel.Outcome, now time.Time) *Announcement {
	b.nextID++
	a := &Announcement{ID: b.nextID, Outcome: o, Posted: now, timing: b.timing}
	b.entries = append(b.entries, a)
	return a
}

// Remove drops an announcement by id. Unknown or already removed ids are ignored.
func (b *Board) Remove(id int) bool {
	for i, a := range b.entries {
		if a.ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Prune removes every announcement whose lifetime and fade have elapsed and
// reports how many were dropped.
func (b *Board) Prune(now time.Time) int {
	kept := b.entries[:0]
	for _, a := range b.entries {
		if a.PhaseAt(now) != Removed {
			kept = append(kept, a)
		}
	}
	n := len(b.entries) - len(kept)
	for i := len(kept); i < len(b.entries); i++ {
		b.entries[i] = nil
	}
	b.entries = kept
	return n
}

// Active returns the announcements still visible at now, oldest first.
func (b *Board) Active(now time.Time) []*Announcement {
	var out []*Announcement
	for _, a := range b.entries {
		if a.PhaseAt(now) != Removed {
			out = append(out, a)
		}
	}
	return out
}

// Latest is the most recently posted visible announcement, or nil.
func (b *Board) Latest(now time.Time) *Announcement {
	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i].PhaseAt(now) != Removed {
			return b.entries[i]
		}
	}
	return nil
}

func (b *Board) Len() int { return len(b.entries) }
