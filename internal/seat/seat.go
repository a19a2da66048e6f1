// Package seat implements stable table seating, dead-button/dead-blind
// button advancement, and per-hand position derivation.
package seat

// Status is a seat's standing independent of any one hand in progress.
type Status string

const (
	Occupied   Status = "occupied"
	SittingOut Status = "sitting_out"
	Empty      Status = "empty"
)

// Seat is one stable seat at a table.
type Seat struct {
	Index    int
	PlayerID string
	Chips    int
	Status   Status
}

func (s Seat) present() bool {
	return s.Status == Occupied && s.PlayerID != ""
}

// eligible seats are present and have chips to play a hand with.
func (s Seat) eligible() bool {
	return s.present() && s.Chips > 0
}

// Manager owns the seat array and the button/blind advancement rules
// between hands. It never mutates mid-hand chip counts; that is the Hand
// Engine's job.
type Manager struct {
	seats         []Seat
	buttonSeat    int
	initialButton int // pinned first-hand button, or -1 for auto
	prevBBSeat    int
	handsPlayed   int
}

// NewManager creates a seat manager for the given seat count, all empty.
func NewManager(seatCount int) *Manager {
	seats := make([]Seat, seatCount)
	for i := range seats {
		seats[i] = Seat{Index: i, Status: Empty}
	}
	return &Manager{seats: seats, buttonSeat: -1, initialButton: -1, prevBBSeat: -1}
}

// Seats returns a copy of the current seat array.
func (m *Manager) Seats() []Seat {
	out := make([]Seat, len(m.seats))
	copy(out, m.seats)
	return out
}

// Seat returns the seat at index i.
func (m *Manager) Seat(i int) Seat { return m.seats[i] }

// AddPlayer seats a player at the first empty index, or at seatIndex if
// given (>=0). Returns the seat index used, or an error if no seat is
// available or the requested seat is occupied.
func (m *Manager) AddPlayer(playerID string, chips int, seatIndex int) (int, error) {
	if seatIndex >= 0 {
		if seatIndex >= len(m.seats) {
			return 0, errSeatOutOfRange
		}
		if m.seats[seatIndex].present() {
			return 0, errSeatTaken
		}
		m.seats[seatIndex] = Seat{Index: seatIndex, PlayerID: playerID, Chips: chips, Status: Occupied}
		return seatIndex, nil
	}
	for i := range m.seats {
		if !m.seats[i].present() {
			m.seats[i] = Seat{Index: i, PlayerID: playerID, Chips: chips, Status: Occupied}
			return i, nil
		}
	}
	return 0, errTableFull
}

// RemovePlayer clears a seat.
func (m *Manager) RemovePlayer(seatIndex int) {
	m.seats[seatIndex] = Seat{Index: seatIndex, Status: Empty}
}

// SetChips updates a seat's chip count, e.g. after a hand settles.
func (m *Manager) SetChips(seatIndex, chips int) {
	m.seats[seatIndex].Chips = chips
}

// SetStatus marks a seat sitting out or back in, without removing it.
func (m *Manager) SetStatus(seatIndex int, status Status) {
	m.seats[seatIndex].Status = status
}

// OccupiedCount returns how many seats hold a player who is not sitting out.
func (m *Manager) OccupiedCount() int {
	n := 0
	for _, s := range m.seats {
		if s.present() {
			n++
		}
	}
	return n
}

// EligibleCount returns how many seats can play the next hand.
func (m *Manager) EligibleCount() int {
	n := 0
	for _, s := range m.seats {
		if s.eligible() {
			n++
		}
	}
	return n
}

// ButtonSeat returns the current button seat index, or -1 if no hand has
// been played yet.
func (m *Manager) ButtonSeat() int { return m.buttonSeat }

// SetInitialButton pins the first hand's button to the given seat. Only
// meaningful before any hand has been played; the seat must be eligible
// when that hand starts or the manager falls back to choosing one.
func (m *Manager) SetInitialButton(seatIndex int) {
	if m.handsPlayed == 0 {
		m.initialButton = seatIndex
	}
}

// Rotation captures the button/blind bookkeeping so a hand that aborts
// can put the rotation back exactly where it was before AdvanceButton.
type Rotation struct {
	buttonSeat  int
	prevBBSeat  int
	handsPlayed int
}

// Rotation snapshots the current rotation state.
func (m *Manager) Rotation() Rotation {
	return Rotation{buttonSeat: m.buttonSeat, prevBBSeat: m.prevBBSeat, handsPlayed: m.handsPlayed}
}

// RestoreRotation undoes a button advance, returning the rotation to a
// previously captured snapshot. Seat occupancy and chips are untouched.
func (m *Manager) RestoreRotation(r Rotation) {
	m.buttonSeat = r.buttonSeat
	m.prevBBSeat = r.prevBBSeat
	m.handsPlayed = r.handsPlayed
}

// Assignment is the result of advancing the button for the next hand.
type Assignment struct {
	ButtonSeat int
	SBSeat     int // -1 if there is no small blind this hand (dead small blind)
	BBSeat     int
	HeadsUp    bool
}

// AdvanceButton computes seat assignments for the next hand and records
// the new button/BB seats. The dead-button rule is enforced: the button
// index always advances to the next occupied seat clockwise regardless of
// whether the prior occupant is still seated, and no seat posts the big
// blind in two consecutive hands.
func (m *Manager) AdvanceButton() (Assignment, error) {
	eligible := m.eligibleIndices()
	if len(eligible) < 2 {
		return Assignment{}, errNotEnoughPlayers
	}

	if m.buttonSeat < 0 {
		// First hand: the pinned button if one was configured and its
		// seat can play, otherwise the first eligible seat.
		if m.initialButton >= 0 && m.initialButton < len(m.seats) && m.seats[m.initialButton].eligible() {
			m.buttonSeat = m.initialButton
		} else {
			m.buttonSeat = eligible[0]
		}
	} else {
		m.buttonSeat = m.nextOccupiedSeat(m.buttonSeat)
	}

	if len(eligible) == 2 {
		// Heads-up: button is SB and acts first pre-flop.
		sb := m.nearestEligibleFrom(m.buttonSeat, true)
		bb := m.nearestEligibleFrom(sb, false)
		m.prevBBSeat = bb
		m.handsPlayed++
		return Assignment{ButtonSeat: m.buttonSeat, SBSeat: sb, BBSeat: bb, HeadsUp: true}, nil
	}

	var sbSeat, bbSeat int
	if m.handsPlayed == 0 {
		sbSeat = m.nearestEligibleFrom(m.buttonSeat, false)
		bbSeat = m.nearestEligibleFrom(sbSeat, false)
	} else {
		// The big blind always advances to the next eligible seat after
		// wherever it fell last hand. This alone guarantees the invariant
		// that governs every edge case here: no seat posts BB twice
		// running, regardless of who busted or sat out in between.
		bbSeat = m.nearestEligibleFrom(m.prevBBSeat, false)

		// The small blind is the eligible seat immediately clockwise of
		// the button. If that seat is the big blind itself -- because an
		// elimination closed the gap that would normally hold a
		// dedicated SB -- there is no small blind this hand (dead SB);
		// the button absorbs that empty step instead of doubling a
		// player onto both blinds.
		firstAfterButton := m.nearestEligibleFrom(m.buttonSeat, false)
		if firstAfterButton == bbSeat {
			sbSeat = -1
		} else {
			sbSeat = firstAfterButton
		}
	}

	m.prevBBSeat = bbSeat
	m.handsPlayed++
	return Assignment{ButtonSeat: m.buttonSeat, SBSeat: sbSeat, BBSeat: bbSeat}, nil
}

func (m *Manager) eligibleIndices() []int {
	var out []int
	for i, s := range m.seats {
		if s.eligible() {
			out = append(out, i)
		}
	}
	return out
}

// nextOccupiedSeat returns the next seat clockwise from i that is
// occupied (present, regardless of chip count), which is how the button
// can land "dead" on a seat that has since been vacated... in practice an
// empty seat index is simply skipped since there is no seat to land on;
// the dead button in this implementation is represented by a hand with no
// seat serving as SB, not by the button literally sitting on an empty
// chair.
func (m *Manager) nextOccupiedSeat(from int) int {
	n := len(m.seats)
	for step := 1; step <= n; step++ {
		idx := (from + step) % n
		if m.seats[idx].present() {
			return idx
		}
	}
	return from
}

// nearestEligibleFrom walks clockwise from 'from'. If inclusive, 'from'
// itself is considered first.
func (m *Manager) nearestEligibleFrom(from int, inclusive bool) int {
	n := len(m.seats)
	start := 1
	if inclusive {
		start = 0
	}
	for step := start; step <= n; step++ {
		idx := (from + step) % n
		if m.seats[idx].eligible() {
			return idx
		}
	}
	return from
}

// ClockwiseFrom returns occupied seat indices (empty and sitting-out seats
// skipped) in clockwise order starting immediately after 'from', wrapping
// around and ending with 'from' itself when it is occupied. Used by the pot
// manager's odd-chip rule and by action-order derivation.
func (m *Manager) ClockwiseFrom(from int) []int {
	n := len(m.seats)
	var out []int
	for step := 1; step <= n; step++ {
		idx := (from + step) % n
		if m.seats[idx].present() {
			out = append(out, idx)
		}
	}
	return out
}
