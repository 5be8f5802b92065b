package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// Each Tick measures the wall time since the previous one and hands it to
// the mosaic presenter, then invokes the scheduler callback. The zero value
// is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Mosaic   *MosaicPresenter
	Schedule func()

	// Now overrides the clock; nil means time.Now.
	Now  func() time.Time
	last time.Time
}

func NewLoop(sess *SessionPresenter, mosaic *MosaicPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Mosaic: mosaic, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now

	if l.Mosaic != nil {
		l.Mosaic.Tick(now, elapsed)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
