package server

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// monitorStyles contains styling for ticker output.
type monitorStyles struct {
	Hand    lipgloss.Style
	Winner  lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
	Info    lipgloss.Style
	Summary lipgloss.Style
}

func newMonitorStyles() *monitorStyles {
	return &monitorStyles{
		Hand: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Summary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
	}
}

// SeatInfo is one seat's line in a monitor callback.
type SeatInfo struct {
	Seat  int
	Team  string
	Stack int
}

// Monitor prints a compact hand-by-hand ticker for the serve command:
// one line per hand with the hand id, the biggest winner and the swing
// in big blinds. All callbacks run on the session goroutine.
type Monitor struct {
	writer io.Writer
	bb     int
	styles *monitorStyles

	startStacks map[int]int
	teams       map[int]string
	actions     int
}

// NewMonitor creates a monitor writing to writer, stdout when nil.
func NewMonitor(writer io.Writer, bb int) *Monitor {
	if writer == nil {
		writer = os.Stdout
	}
	return &Monitor{
		writer: writer,
		bb:     bb,
		styles: newMonitorStyles(),
	}
}

// OnHandStart records the pre-blind stacks the hand's swing is measured
// against.
func (m *Monitor) OnHandStart(handID string, button int, seats []SeatInfo) {
	m.startStacks = make(map[int]int, len(seats))
	m.teams = make(map[int]string, len(seats))
	m.actions = 0
	for _, seat := range seats {
		m.startStacks[seat.Seat] = seat.Stack
		m.teams[seat.Seat] = seat.Team
	}
}

// OnAction counts decisions for the hand line.
func (m *Monitor) OnAction(seat int, action string, amount int) {
	m.actions++
}

// OnHandEnd prints the hand's line: winner and swing in big blinds.
func (m *Monitor) OnHandEnd(handID string, seats []SeatInfo) {
	winnerSeat := -1
	maxWin := 0
	for _, seat := range seats {
		delta := seat.Stack - m.startStacks[seat.Seat]
		if delta > maxWin {
			maxWin = delta
			winnerSeat = seat.Seat
		}
	}

	winner := "<split>"
	if winnerSeat >= 0 {
		winner = m.styles.Winner.Render(fmt.Sprintf("seat %d %s", winnerSeat, m.teams[winnerSeat]))
	}

	bbStr := m.styles.Info.Render("0.0 BB")
	if maxWin > 0 && m.bb > 0 {
		bbStr = m.styles.Win.Render(fmt.Sprintf("+%.1f BB", float64(maxWin)/float64(m.bb)))
	}

	fmt.Fprintf(m.writer, "%-20s %-32s %s %s\n",
		m.styles.Hand.Render(handID),
		winner,
		bbStr,
		m.styles.Info.Render(fmt.Sprintf("(%d actions)", m.actions)))
}

// OnMatchEnd prints the match summary line.
func (m *Monitor) OnMatchEnd(winner string, hands int) {
	if winner == "" {
		fmt.Fprintf(m.writer, "\n%s\n", m.styles.Loss.Render(fmt.Sprintf("Match ended with no winner after %d hands", hands)))
		return
	}
	fmt.Fprintf(m.writer, "\n%s\n", m.styles.Summary.Render(fmt.Sprintf("%s wins the match after %d hands", winner, hands)))
}
