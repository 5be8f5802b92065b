package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows capture durations and mosaic counters.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCounters(updates, squares, drops uint64)
}

type sessionStats struct {
	sessionLbl  *LabelWidget
	totalLbl    *LabelWidget
	countersLbl *LabelWidget
}

// NewSessionStats creates session, total and counter labels on row starting
// at startCol. If parent is nil, labels are positioned relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl:  Label(Width(14)),
		totalLbl:    Label(Width(14)),
		countersLbl: Label(Width(36)),
	}
	for i, lbl := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.countersLbl} {
		if parent != nil {
			Grid(lbl, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(lbl, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.sessionLbl.Configure(Txt("Session: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.countersLbl.Configure(Txt(formatCounters(0, 0, 0)))
	return s
}

func formatClock(prefix string, d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%s: %02d:%02d", prefix, seconds/60, seconds%60)
}

func formatCounters(updates, squares, drops uint64) string {
	return fmt.Sprintf("Updates: %d  Squares: %d  Drops: %d", updates, squares, drops)
}

func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt(formatClock("Session", d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt(formatClock("Total", d)))
}

func (s *sessionStats) SetCounters(updates, squares, drops uint64) {
	if s == nil || s.countersLbl == nil {
		return
	}
	s.countersLbl.Configure(Txt(formatCounters(updates, squares, drops)))
}
