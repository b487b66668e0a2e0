package notify

import (
	"sync"
	"time"

	"fleet-inspector/internal/domain"
)

// Kind classifies notices surfaced to the operator.
type Kind string

const (
	KindStatus   Kind = "status"
	KindAdvisory Kind = "advisory"
	KindError    Kind = "error"
	KindResult   Kind = "result"
)

// Notice is a sequenced user-visible message. Advisory notices (a failed
// location fix, for example) never interrupt the inspection; error notices
// carry the backend detail when one is available.
type Notice struct {
	Seq       int64              `json:"seq"`
	Timestamp time.Time          `json:"timestamp"`
	ReportID  string             `json:"reportId,omitempty"`
	Kind      Kind               `json:"kind"`
	State     domain.ReportState `json:"state,omitempty"`
	Message   string             `json:"message,omitempty"`
	Detail    string             `json:"detail,omitempty"`
}

// Bus stores recent notices and provides incremental reads.
type Bus struct {
	mu         sync.RWMutex
	nextSeq    int64
	maxNotices int
	notices    []Notice
}

// NewBus creates a bounded in-memory notice buffer.
func NewBus(maxNotices int) *Bus {
	if maxNotices <= 0 {
		maxNotices = 500
	}

	return &Bus{
		maxNotices: maxNotices,
		notices:    make([]Notice, 0, maxNotices),
	}
}

// Publish appends one notice and assigns sequence and timestamp.
func (b *Bus) Publish(notice Notice) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	notice.Seq = b.nextSeq
	if notice.Timestamp.IsZero() {
		notice.Timestamp = time.Now().UTC()
	}

	b.notices = append(b.notices, notice)
	if len(b.notices) > b.maxNotices {
		trim := len(b.notices) - b.maxNotices
		b.notices = append([]Notice(nil), b.notices[trim:]...)
	}

	return notice
}

// Since returns notices with sequence strictly greater than seq.
func (b *Bus) Since(seq int64) []Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.notices) == 0 {
		return nil
	}

	out := make([]Notice, 0, len(b.notices))
	for _, notice := range b.notices {
		if notice.Seq > seq {
			out = append(out, notice)
		}
	}
	return out
}
