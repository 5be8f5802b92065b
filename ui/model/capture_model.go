package model

import "sync/atomic"

// CaptureModel tracks whether the capture source is feeding the mosaic. The
// zero value is disabled and usable. Toggle callbacks and the render tick
// may race, hence the atomic.
type CaptureModel struct{ enabled atomic.Bool }

// Enabled reports whether capture is currently enabled.
func (m *CaptureModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag and reports whether it changed.
func (m *CaptureModel) SetEnabled(b bool) bool {
	if m == nil {
		return false
	}
	return m.enabled.Swap(b) != b
}
