package model

import (
	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// RegionModel remembers the squares copied by the most recent mosaic pass so
// the preview can outline them. Zero value is usable with the overlay off.
// No synchronization needed: updates occur on the UI thread tick.
type RegionModel struct {
	regions []mosaic.Region
	size    int
	show    bool
}

func NewRegionModel() *RegionModel { return &RegionModel{} }

// SetPass records the regions of an updating tick. Ticks that copied nothing
// leave the previous pass in place.
func (m *RegionModel) SetPass(res mosaic.TickResult) {
	if m == nil || !res.Updated {
		return
	}
	m.regions = append(m.regions[:0], res.Regions...)
	m.size = res.Size
}

// Regions returns the last pass (may be empty) and its square size.
func (m *RegionModel) Regions() ([]mosaic.Region, int) {
	if m == nil {
		return nil, 0
	}
	return m.regions, m.size
}

// ShowOverlay reports whether the preview should outline the last pass.
func (m *RegionModel) ShowOverlay() bool { return m != nil && m.show }

// SetShowOverlay toggles the region outline.
func (m *RegionModel) SetShowOverlay(b bool) {
	if m != nil {
		m.show = b
	}
}

// Reset clears the remembered pass.
func (m *RegionModel) Reset() {
	if m == nil {
		return
	}
	m.regions = m.regions[:0]
	m.size = 0
}
