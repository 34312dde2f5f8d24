package types

// Transcript is the external ASR artifact for one recording: sentence-level
// segments with word-level timestamps, plus the recording's total duration
// and a stable source identifier.
type Transcript struct {
	Segments []TranscriptSegment `json:"segments"`
	Duration float64             `json:"duration"`
	Source   string              `json:"source"`
}

type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Token is one normalized transcript word, sorted ascending by Start.
type Token struct {
	Text  string
	Start float64
	End   float64
}

// ApplyTarget is the closed vocabulary a marker may apply to a segment.
type ApplyTarget string

const (
	ApplyBest       ApplyTarget = "best"
	ApplyGood       ApplyTarget = "good"
	ApplySkip       ApplyTarget = "skip"
	ApplyHook       ApplyTarget = "hook"
	ApplyQuote      ApplyTarget = "quote"
	ApplyConclusion ApplyTarget = "conclusion"
)

type MarkerKind int

const (
	KindStandalone MarkerKind = iota
	KindStart
	KindEnd
	KindRetroactive
)

func (k MarkerKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindRetroactive:
		return "retroactive"
	default:
		return "standalone"
	}
}

// ParsedCommand holds the structured fields spoken between the envelope
// keywords. Absent numeric fields are nil. LegacyOrder exists only to replay
// recordings made before the step/scene vocabulary and is never produced by
// new command variants.
type ParsedCommand struct {
	Naming      string
	SceneNumber *float64
	TakeNumber  *int
	Step        *int
	LegacyOrder *int
	Effect      string
	Transition  string
	Mark        string
	Apply       *ApplyTarget
}

// Marker is one recognized spoken command envelope. CutPoint is the trim
// instant, not the envelope's own speech span: starts and standalones cut
// after the spoken instruction, ends and retroactives cut before it.
type Marker struct {
	ID            int
	EnvelopeStart float64
	EnvelopeEnd   float64
	CutPoint      float64
	Kind          MarkerKind
	Parsed        ParsedCommand
}

// SceneOrderKey is the composite sort key for final segment ordering.
// DetectionIndex is the originating marker's position in the time-sorted
// marker list and is always present, so the order is total and stable.
type SceneOrderKey struct {
	Scene          *float64 `json:"scene,omitempty"`
	Step           *int     `json:"step,omitempty"`
	LegacyOrder    *int     `json:"legacy_order,omitempty"`
	DetectionIndex int      `json:"detection_index"`
}

// Segment is one editable clip interval. Start < End strictly; intervals
// violating that are never materialized. Tags is append-only after
// construction and only the retroactive resolver appends.
type Segment struct {
	ID              int           `json:"id"`
	Start           float64       `json:"start_sec"`
	End             float64       `json:"end_sec"`
	Name            string        `json:"name"`
	Key             SceneOrderKey `json:"key"`
	Take            *int          `json:"take,omitempty"`
	Tags            []ApplyTarget `json:"tags,omitempty"`
	SourceMarkerIDs []int         `json:"source_marker_ids"`
}

// HasTag reports whether the segment carries target at least once.
func (s Segment) HasTag(target ApplyTarget) bool {
	for _, t := range s.Tags {
		if t == target {
			return true
		}
	}
	return false
}

type DiagnosticKind string

const (
	DiagMalformedMarker      DiagnosticKind = "malformed_marker"
	DiagUnmatchedEnd         DiagnosticKind = "unmatched_end"
	DiagZeroDurationSegment  DiagnosticKind = "zero_or_negative_duration_segment"
	DiagAmbiguousRetroTarget DiagnosticKind = "ambiguous_retroactive_target"
	DiagCollaboratorFailure  DiagnosticKind = "external_collaborator_failure"
)

// Diagnostic records a non-fatal drop or degradation. Diagnostics are
// collected, never thrown; nothing spoken disappears without one.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	At      float64        `json:"at_sec"`
	Message string         `json:"message"`
}

// RoughCutPlan is the per-recording result: the ordered rough cut, the
// removed footage retained for review, and every diagnostic raised along
// the way. Immutable after construction.
type RoughCutPlan struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"`
	Duration    float64      `json:"duration_sec"`
	Selected    []Segment    `json:"selected"`
	Removed     []Segment    `json:"removed"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
