package edl

import (
	"fmt"
	"math"
)

// FromSeconds converts a time offset to HH:MM:SS:FF, rounding to the nearest
// frame boundary. With ToSeconds it round-trips losslessly within one frame.
func FromSeconds(sec, fps float64) string {
	nominal := int(math.Round(fps))
	frames := int(math.Round(sec * fps))
	if frames < 0 {
		frames = 0
	}

	ff := frames % nominal
	totalSec := frames / nominal
	return fmt.Sprintf("%02d:%02d:%02d:%02d",
		totalSec/3600, (totalSec/60)%60, totalSec%60, ff)
}

// ToSeconds parses an HH:MM:SS:FF timecode back into seconds at fps.
func ToSeconds(tc string, fps float64) (float64, error) {
	var hh, mm, ss, ff int
	if _, err := fmt.Sscanf(tc, "%d:%d:%d:%d", &hh, &mm, &ss, &ff); err != nil {
		return 0, fmt.Errorf("parse timecode %q: %w", tc, err)
	}
	nominal := int(math.Round(fps))
	if ff >= nominal {
		return 0, fmt.Errorf("parse timecode %q: frame %d exceeds rate %d", tc, ff, nominal)
	}
	frames := ((hh*3600+mm*60+ss)*nominal + ff)
	return float64(frames) / fps, nil
}
