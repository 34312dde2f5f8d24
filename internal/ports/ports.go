package ports

import (
	"context"

	"slatecut/internal/types"
)

// VideoTool is the media container collaborator. It probes recordings and
// physically cuts bytes out of them; the engine itself never touches media.
type VideoTool interface {
	ProbeDuration(ctx context.Context, in string) (float64, error)
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	// ExtractSegment cuts [start, end) seconds of in into out. The fast path
	// stream-copies; reencode selects the slower frame-accurate strategy
	// used when a copy extraction fails.
	ExtractSegment(ctx context.Context, in string, start, end float64, out string, reencode bool) error
}

// Transcriber produces a word-timestamped transcript for a recording.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}
