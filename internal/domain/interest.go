package domain

import (
	"fmt"
	"strings"
)

// Interests is the recognized interest vocabulary. Requests may only use tags
// from this list; unknown tags are rejected, never silently dropped.
var Interests = []string{
	"culture", "food", "nature", "adventure", "history", "art", "music",
	"nightlife", "shopping", "architecture", "museums", "beaches", "hiking",
	"photography", "local experiences", "festivals",
}

var interestSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Interests))
	for _, tag := range Interests {
		m[tag] = struct{}{}
	}
	return m
}()

// NormalizeInterests trims and lowercases each tag and checks it against the
// recognized vocabulary. Returns an error naming the first unknown tag, or an
// error if the resulting set is empty. Duplicates are collapsed, preserving
// first-occurrence order.
func NormalizeInterests(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, raw := range tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		if _, ok := interestSet[tag]; !ok {
			return nil, fmt.Errorf("unrecognized interest %q", raw)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("at least one interest is required")
	}
	return out, nil
}
