package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is one itinerary density preset.
type Style struct {
	Label      string  // display name, e.g. "Relaxed"
	Name       string  // machine name, e.g. "relaxed"
	Multiplier float64 // applied to the activities baseline
}

// StyleSet is the ordered list of styles a request generates plans for.
type StyleSet []Style

// DefaultStyles returns Relaxed 0.85, Balanced 1.0, Packed 1.2.
func DefaultStyles() StyleSet {
	return StyleSet{
		{Label: "Relaxed", Name: "relaxed", Multiplier: 0.85},
		{Label: "Balanced", Name: "balanced", Multiplier: 1.0},
		{Label: "Packed", Name: "packed", Multiplier: 1.2},
	}
}

// Multiplier returns the multiplier for a style name, or 1.0 when it is not in the set.
func (s StyleSet) Multiplier(name string) float64 {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, st := range s {
		if st.Name == name {
			return st.Multiplier
		}
	}
	return 1.0
}

// ParseStyles reads "Label:name:multiplier" entries separated by commas.
func ParseStyles(list string) (StyleSet, error) {
	var out StyleSet
	seen := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("style %q: want Label:name:multiplier", entry)
		}
		label := strings.TrimSpace(parts[0])
		name := strings.ToLower(strings.TrimSpace(parts[1]))
		if label == "" || name == "" {
			return nil, fmt.Errorf("style %q: empty label or name", entry)
		}
		mult, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || mult < 0 {
			return nil, fmt.Errorf("style %q: bad multiplier", entry)
		}
		if seen[name] {
			return nil, fmt.Errorf("style %q: duplicate name", name)
		}
		seen[name] = true
		out = append(out, Style{Label: label, Name: name, Multiplier: mult})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no styles configured")
	}
	return out, nil
}
