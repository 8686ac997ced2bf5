package downloadmgr

import "math"

// ProgressEventName is the event the front end listens to
const ProgressEventName = "download_progress"

// ProgressEvent is emitted while a download is running
type ProgressEvent struct {
	ModID      *string `json:"mod_id"`
	URL        string  `json:"url"`
	Downloaded uint64  `json:"downloaded"`
	Total      *uint64 `json:"total"`
	Progress   *uint8  `json:"progress"`
}

// ProgressSink delivers progress events to the front end
type ProgressSink interface {
	EmitProgress(event ProgressEvent) error
}

// ProgressFunc adapts a function to a ProgressSink
type ProgressFunc func(event ProgressEvent) error

func (f ProgressFunc) EmitProgress(event ProgressEvent) error { return f(event) }

// percentTracker reports a new percentage only when it grew
type percentTracker struct {
	total uint64
	last  int
}

func newPercentTracker(total uint64) *percentTracker {
	return &percentTracker{total: total, last: -1}
}

// observe returns the rounded percentage and whether it should be emitted
func (p *percentTracker) observe(downloaded uint64) (uint8, bool) {
	if p.total == 0 {
		return 0, false
	}
	pct := int(math.Round(float64(downloaded) / float64(p.total) * 100))
	// a lying Content-Length can push us above 100
	if pct <= p.last || pct > 100 {
		return 0, false
	}
	p.last = pct
	return uint8(pct), true
}
