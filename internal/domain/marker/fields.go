package marker

import (
	"strings"

	"slatecut/internal/types"
)

type intent int

const (
	intentNone intent = iota
	intentStart
	intentEnd
)

// parseCommand extracts structured fields from the normalized words between
// the envelope keywords. Matching is tolerant free text: recognized keywords
// bind their values, everything unrecognized falls back to the naming field
// rather than failing.
func parseCommand(words []string, g Grammar) (types.ParsedCommand, intent) {
	var cmd types.ParsedCommand
	in := intentNone
	var naming []string

	for i := 0; i < len(words); {
		w := words[i]

		if target, ok := g.Apply[w]; ok {
			if cmd.Apply == nil {
				t := target
				cmd.Apply = &t
			}
			i++
			continue
		}

		switch w {
		case "scene":
			if v, n, ok := parseNumberPhrase(words, i+1); ok {
				cmd.SceneNumber = &v
				i += 1 + n
				continue
			}
		case "take":
			if v, n, ok := parseIntPhrase(words, i+1); ok {
				cmd.TakeNumber = &v
				i += 1 + n
				continue
			}
		case "step":
			if v, n, ok := parseIntPhrase(words, i+1); ok {
				cmd.Step = &v
				i += 1 + n
				continue
			}
		case "order":
			// Deprecated synonym kept only so older recordings replay.
			if v, n, ok := parseIntPhrase(words, i+1); ok {
				cmd.LegacyOrder = &v
				i += 1 + n
				continue
			}
		case "effect":
			if i+1 < len(words) {
				cmd.Effect = words[i+1]
				i += 2
				continue
			}
		case "transition":
			if i+1 < len(words) {
				cmd.Transition = words[i+1]
				i += 2
				continue
			}
		case "mark":
			if i+1 < len(words) && !isKeyword(words[i+1], g) {
				cmd.Mark = words[i+1]
				i += 2
			} else {
				cmd.Mark = "true"
				i++
			}
			continue
		case "start", "begin", "open":
			if in == intentNone {
				in = intentStart
			}
			i++
			continue
		case "end", "stop", "close":
			if in == intentNone {
				in = intentEnd
			}
			i++
			continue
		}

		naming = append(naming, w)
		i++
	}

	cmd.Naming = strings.Join(naming, " ")
	return cmd, in
}

func isKeyword(w string, g Grammar) bool {
	if _, ok := g.Apply[w]; ok {
		return true
	}
	switch w {
	case "scene", "take", "step", "order", "effect", "transition", "mark",
		"start", "begin", "open", "end", "stop", "close",
		g.StartKeyword, g.EndKeyword, g.RetroKeyword:
		return true
	}
	return false
}
