package domain

// EntityKind distinguishes the two checklist shapes an inspection covers.
type EntityKind string

const (
	EntityKindTruck   EntityKind = "truck"
	EntityKindTrailer EntityKind = "trailer"
)

// ItemKey is the stable identifier of one inspectable component.
type ItemKey string

// Verdict is the recorded outcome for a checklist item. The zero value
// means the item has not been inspected yet.
type Verdict string

const (
	VerdictPass          Verdict = "pass"
	VerdictFail          Verdict = "fail"
	VerdictNotApplicable Verdict = "not_applicable"
)

// ValidVerdict reports whether v belongs to the closed verdict set.
func ValidVerdict(v Verdict) bool {
	switch v {
	case VerdictPass, VerdictFail, VerdictNotApplicable:
		return true
	default:
		return false
	}
}

// EvidenceRef is an opaque, locally resolvable reference to a captured
// photo. Exactly one checklist item owns a given reference at a time.
type EvidenceRef struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// ItemResult is one checklist item's state on a specific entity.
type ItemResult struct {
	Key      ItemKey      `json:"key"`
	Value    Verdict      `json:"value,omitempty"`
	Evidence *EvidenceRef `json:"evidence,omitempty"`
}

// ReportState tracks the lifecycle of a single inspection report.
type ReportState string

const (
	ReportStateNotStarted ReportState = "not_started"
	ReportStateInProgress ReportState = "in_progress"
	ReportStateSubmitted  ReportState = "submitted"
	ReportStateAbandoned  ReportState = "abandoned"
)

// Settings contains user-selectable runtime configuration.
type Settings struct {
	ServerURL string `json:"serverUrl"`
	Language  string `json:"language"`
}
