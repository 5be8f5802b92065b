package model

import (
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// SessionModel tracks how long capture has been feeding the mosaic (current
// session and accumulated total) and how much of the canvas it has patched.
// It is decoupled from the UI; presenters poll Values() and Counters().
// The zero value is ready to use.
type SessionModel struct {
	active       bool
	captureStart time.Time
	session      time.Duration
	accumulated  time.Duration

	updates    uint64
	squares    uint64
	lastUpdate time.Time
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the session clock from the current capture state.
func (m *SessionModel) OnTick(capturing bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case capturing && !m.active:
		m.active = true
		m.captureStart = now
		m.session = 0
	case capturing:
		m.session = now.Sub(m.captureStart)
	case m.active:
		m.session = now.Sub(m.captureStart)
		m.accumulated += m.session
		m.active = false
	}
}

// OnMosaic counts a compositor tick that actually patched the canvas.
func (m *SessionModel) OnMosaic(res mosaic.TickResult, now time.Time) {
	if m == nil || !res.Updated {
		return
	}
	m.updates++
	m.squares += uint64(len(res.Regions))
	m.lastUpdate = now
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.session
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Counters returns mosaic updates, squares copied and the time of the last update.
func (m *SessionModel) Counters() (updates, squares uint64, last time.Time) {
	if m == nil {
		return 0, 0, time.Time{}
	}
	return m.updates, m.squares, m.lastUpdate
}
