package server

import (
	"bytes"
	"strings"
	"testing"
)

func TestMonitorHandLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := NewMonitor(&buf, 100)

	seats := []SeatInfo{
		{Seat: 0, Team: "alpha", Stack: 10000},
		{Seat: 1, Team: "bravo", Stack: 10000},
	}
	m.OnHandStart("H-20260825-00000", 0, seats)
	m.OnAction(0, "RAISE_TO", 300)
	m.OnAction(1, "CALL", 0)
	m.OnAction(0, "FOLD", 0)
	m.OnHandEnd("H-20260825-00000", []SeatInfo{
		{Seat: 0, Team: "alpha", Stack: 9700},
		{Seat: 1, Team: "bravo", Stack: 10300},
	})

	out := buf.String()
	for _, want := range []string{"H-20260825-00000", "seat 1 bravo", "+3.0 BB", "(3 actions)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Hand line missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "alpha") {
		t.Errorf("Hand line names the loser:\n%s", out)
	}
}

func TestMonitorActionCountResets(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := NewMonitor(&buf, 100)

	seats := []SeatInfo{{Seat: 0, Team: "a", Stack: 500}, {Seat: 1, Team: "b", Stack: 500}}
	m.OnHandStart("H-1", 0, seats)
	m.OnAction(0, "FOLD", 0)
	m.OnHandEnd("H-1", []SeatInfo{{Seat: 0, Team: "a", Stack: 450}, {Seat: 1, Team: "b", Stack: 550}})

	buf.Reset()
	m.OnHandStart("H-2", 1, seats)
	m.OnAction(1, "CHECK", 0)
	m.OnAction(0, "CHECK", 0)
	m.OnHandEnd("H-2", seats)

	if out := buf.String(); !strings.Contains(out, "(2 actions)") {
		t.Errorf("Second hand line: %s", out)
	}
}

func TestMonitorChoppedPot(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := NewMonitor(&buf, 100)

	seats := []SeatInfo{{Seat: 0, Team: "a", Stack: 1000}, {Seat: 1, Team: "b", Stack: 1000}}
	m.OnHandStart("H-1", 0, seats)
	m.OnHandEnd("H-1", seats)

	out := buf.String()
	if !strings.Contains(out, "<split>") || !strings.Contains(out, "0.0 BB") {
		t.Errorf("Chop line: %s", out)
	}
}

func TestMonitorMatchEnd(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := NewMonitor(&buf, 100)

	m.OnMatchEnd("bravo", 37)
	if out := buf.String(); !strings.Contains(out, "bravo wins the match after 37 hands") {
		t.Errorf("Summary line: %s", out)
	}

	buf.Reset()
	m.OnMatchEnd("", 5)
	if out := buf.String(); !strings.Contains(out, "no winner after 5 hands") {
		t.Errorf("Abort line: %s", out)
	}
}
