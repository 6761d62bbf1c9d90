package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model output is supposed to be a bare JSON object, but in practice it
// arrives wrapped in prose, fenced in a markdown block, or with small
// syntax slips. extractJSONObject runs an ordered chain of strategies and
// returns the first candidate that parses; each candidate is tried as-is
// and then once more after light repair.

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

	// A quoted value immediately followed by a quoted value on the next
	// line is missing a comma.
	adjacentFieldsRe = regexp.MustCompile(`"\s*\n\s*"`)
	// A closing token or number immediately followed by a quoted key is
	// missing a comma as well.
	missingCommaKeyRe = regexp.MustCompile(`(["\d}\]])\s*\n\s*"([^"\n]+)"\s*:`)
)

func extractJSONObject(raw string) ([]byte, error) {
	for _, candidate := range jsonCandidates(raw) {
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
		repaired := repairJSON(candidate)
		if json.Valid([]byte(repaired)) {
			return []byte(repaired), nil
		}
	}
	return nil, fmt.Errorf("unable to extract valid JSON from response")
}

// jsonCandidates yields the raw text, then the fenced block if any, then
// the first-{ to last-} span.
func jsonCandidates(raw string) []string {
	candidates := []string{strings.TrimSpace(raw)}

	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		candidates = append(candidates, raw[first:last+1])
	}
	return candidates
}

// repairJSON fixes the malformations seen most often in model output:
// missing commas between adjacent quoted fields and before a following
// quoted key.
func repairJSON(s string) string {
	s = adjacentFieldsRe.ReplaceAllString(s, "\",\n\"")
	s = missingCommaKeyRe.ReplaceAllString(s, "$1,\n\"$2\":")
	return s
}
