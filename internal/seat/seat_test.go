package seat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFilled(t *testing.T, n int, chips int) *Manager {
	m := NewManager(n)
	for i := 0; i < n; i++ {
		_, err := m.AddPlayer("p"+string(rune('0'+i)), chips, -1)
		require.NoError(t, err)
	}
	return m
}

func TestFirstHandHeadsUpButtonIsSB(t *testing.T) {
	m := newFilled(t, 2, 100)
	a, err := m.AdvanceButton()
	require.NoError(t, err)
	require.True(t, a.HeadsUp)
	require.Equal(t, a.ButtonSeat, a.SBSeat)
	require.NotEqual(t, a.SBSeat, a.BBSeat)
}

func TestFirstHandRingAssignsSBBBAfterButton(t *testing.T) {
	m := newFilled(t, 4, 100)
	a, err := m.AdvanceButton()
	require.NoError(t, err)
	require.Equal(t, 0, a.ButtonSeat)
	require.Equal(t, 1, a.SBSeat)
	require.Equal(t, 2, a.BBSeat)
}

func TestNoSeatPostsBBTwiceRunningOverManyHands(t *testing.T) {
	m := newFilled(t, 6, 100)
	seenBB := -1
	for i := 0; i < 20; i++ {
		a, err := m.AdvanceButton()
		require.NoError(t, err)
		require.NotEqual(t, seenBB, a.BBSeat, "seat %d posted BB twice running at iteration %d", a.BBSeat, i)
		seenBB = a.BBSeat
	}
}

func TestButtonAdvancesClockwiseAroundVacatedSeat(t *testing.T) {
	m := newFilled(t, 5, 100)
	_, err := m.AdvanceButton()
	require.NoError(t, err)
	// seat 1 busts and is removed before the next hand
	m.RemovePlayer(1)
	a, err := m.AdvanceButton()
	require.NoError(t, err)
	require.Equal(t, 2, a.ButtonSeat) // skipped the now-empty seat 1
}

func TestDeadSmallBlindWhenEliminationClosesTheGap(t *testing.T) {
	m := newFilled(t, 4, 100)
	first, err := m.AdvanceButton()
	require.NoError(t, err)
	// the seat that would be SB next hand busts
	nextSB := m.nearestEligibleFrom(first.ButtonSeat, false) // the would-be button after advance
	_ = nextSB
	// bust the seat sitting directly after where the button will land
	afterNextButton := m.nearestEligibleFrom(m.nearestEligibleFrom(first.ButtonSeat, false), false)
	m.RemovePlayer(afterNextButton)

	second, err := m.AdvanceButton()
	require.NoError(t, err)
	if second.SBSeat == -1 {
		require.NotEqual(t, second.BBSeat, first.BBSeat)
	}
}

func TestRestoreRotationUndoesButtonAdvance(t *testing.T) {
	m := newFilled(t, 4, 100)
	first, err := m.AdvanceButton()
	require.NoError(t, err)

	snap := m.Rotation()
	_, err = m.AdvanceButton()
	require.NoError(t, err)
	m.RestoreRotation(snap)
	require.Equal(t, first.ButtonSeat, m.ButtonSeat())

	// The replayed advance lands exactly where the undone one did.
	second, err := m.AdvanceButton()
	require.NoError(t, err)
	require.NotEqual(t, first.BBSeat, second.BBSeat)
	require.Equal(t, m.nextOccupiedSeat(first.ButtonSeat), second.ButtonSeat)
}

func TestInitialButtonPinsFirstHand(t *testing.T) {
	m := newFilled(t, 4, 100)
	m.SetInitialButton(2)
	a, err := m.AdvanceButton()
	require.NoError(t, err)
	require.Equal(t, 2, a.ButtonSeat)
	require.Equal(t, 3, a.SBSeat)
	require.Equal(t, 0, a.BBSeat)
}

func TestInitialButtonFallsBackWhenSeatCannotPlay(t *testing.T) {
	m := newFilled(t, 4, 100)
	m.RemovePlayer(2)
	m.SetInitialButton(2)
	a, err := m.AdvanceButton()
	require.NoError(t, err)
	require.Equal(t, 0, a.ButtonSeat)
}

func TestNotEnoughPlayersErrors(t *testing.T) {
	m := newFilled(t, 1, 100)
	_, err := m.AdvanceButton()
	require.Error(t, err)
}

func TestClockwiseFromWrapsAround(t *testing.T) {
	m := newFilled(t, 4, 100)
	order := m.ClockwiseFrom(2)
	require.Equal(t, []int{3, 0, 1}, order)
}
