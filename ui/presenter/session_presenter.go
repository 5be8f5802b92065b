package presenter

import (
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
	"github.com/soocke/pixel-mosaic/ui/model"
)

// CaptureEnabledModel reports whether capture is enabled.
type CaptureEnabledModel interface{ Enabled() bool }

// ChannelStatsSource exposes frame hand-off counters.
type ChannelStatsSource interface{ Stats() mosaic.ChannelStats }

// SessionView displays formatted session durations and mosaic counters.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCounters(updates, squares, drops uint64)
}

// SessionPresenter formats session and mosaic counters from the model to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	cap     CaptureEnabledModel
	channel ChannelStatsSource
	view    SessionView
}

// NewSessionPresenter returns a new SessionPresenter. channel may be nil.
func NewSessionPresenter(sess *model.SessionModel, cap CaptureEnabledModel, channel ChannelStatsSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, cap: cap, channel: channel, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.cap == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.cap.Enabled(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)

	updates, squares, _ := p.sess.Counters()
	var drops uint64
	if p.channel != nil {
		drops = p.channel.Stats().Drops
	}
	p.view.SetCounters(updates, squares, drops)
}
