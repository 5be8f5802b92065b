package model

import (
	"testing"
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	session, total := m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got session=%v total=%v", session, total)
	}

	// Stop at 5s, then idle: nothing moves.
	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	session, total = m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("after stop expected persisted 5s; got session=%v total=%v", session, total)
	}

	// Second session at 10s lasting 3s.
	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	session, total = m.Values()
	if session != 3*time.Second || total != 8*time.Second {
		t.Fatalf("expected session=3s total=8s, got session=%v total=%v", session, total)
	}

	m.OnTick(false, base.Add(13*time.Second))
	session, total = m.Values()
	if session != 3*time.Second || total != 8*time.Second {
		t.Fatalf("final expected session=3s total=8s got session=%v total=%v", session, total)
	}
}

func TestSessionModel_CountsOnlyUpdatingTicks(t *testing.T) {
	m := NewSessionModel()
	now := time.Unix(100, 0)
	m.OnMosaic(mosaic.TickResult{Accepted: true}, now)
	m.OnMosaic(mosaic.TickResult{Accepted: true, Updated: true, Regions: make([]mosaic.Region, 3)}, now)
	m.OnMosaic(mosaic.TickResult{Accepted: true, Updated: true, Regions: make([]mosaic.Region, 2)}, now.Add(time.Second))

	updates, squares, last := m.Counters()
	if updates != 2 || squares != 5 {
		t.Fatalf("expected 2 updates / 5 squares, got %d / %d", updates, squares)
	}
	if !last.Equal(now.Add(time.Second)) {
		t.Fatalf("unexpected last update %v", last)
	}
}

func TestSessionModel_NilSafe(t *testing.T) {
	var m *SessionModel
	m.OnTick(true, time.Now())
	m.OnMosaic(mosaic.TickResult{Updated: true}, time.Now())
	if s, tot := m.Values(); s != 0 || tot != 0 {
		t.Fatalf("nil model should report zero")
	}
}

func TestRegionModel_KeepsLastUpdatingPass(t *testing.T) {
	m := NewRegionModel()
	m.SetPass(mosaic.TickResult{Updated: true, Size: 32, Regions: []mosaic.Region{{X: 0, Y: 32, Size: 32}}})
	m.SetPass(mosaic.TickResult{Accepted: true})
	regions, size := m.Regions()
	if len(regions) != 1 || size != 32 || regions[0].Y != 32 {
		t.Fatalf("unexpected pass %v size=%d", regions, size)
	}
	m.Reset()
	if regions, _ := m.Regions(); len(regions) != 0 {
		t.Fatalf("reset did not clear")
	}
	if m.ShowOverlay() {
		t.Fatalf("overlay defaults off")
	}
	m.SetShowOverlay(true)
	if !m.ShowOverlay() {
		t.Fatalf("overlay toggle lost")
	}
}

func TestCaptureModel_SetEnabledReportsChange(t *testing.T) {
	var m CaptureModel
	if !m.SetEnabled(true) || m.SetEnabled(true) {
		t.Fatalf("change reporting wrong")
	}
	if !m.Enabled() {
		t.Fatalf("expected enabled")
	}
}
