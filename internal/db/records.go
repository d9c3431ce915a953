package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/campus-match/internal/types"
)

var (
	yearDigit = regexp.MustCompile(`\b([1-4])(?:st|nd|rd|th)?\b`)
	yearWords = map[string]int{
		"first":  1,
		"second": 2,
		"third":  3,
		"fourth": 4,
		"final":  4,
	}

	// keys read from object-shaped project and experience entries, in display order
	entryKeys = []string{"title", "jobTitle", "job_title", "role", "name", "company", "description"}
)

// ParseYear converts stored year text such as "3rd Year", "Final Year" or "2"
// to an academic year in 1-4. Anything else returns 0 (unknown).
func ParseYear(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0
	}
	if m := yearDigit.FindStringSubmatch(text); m != nil {
		return int(m[1][0] - '0')
	}
	for _, word := range strings.Fields(text) {
		if year, ok := yearWords[word]; ok {
			return year
		}
	}
	return 0
}

func isEmptyJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("[]"))
}

// storedEducation is one element of students.education
type storedEducation struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Department  string `json:"department"`
	Institution string `json:"institution"`
}

// decodeEducation reads students.education, which holds either objects or plain degree strings
func decodeEducation(raw []byte) ([]types.EducationEntry, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		// a single object is accepted as a one-element list
		items = []json.RawMessage{raw}
	}

	var entries []types.EducationEntry
	for _, item := range items {
		var degree string
		if err := json.Unmarshal(item, &degree); err == nil {
			if degree = strings.TrimSpace(degree); degree != "" {
				entries = append(entries, types.EducationEntry{Degree: degree})
			}
			continue
		}

		var stored storedEducation
		if err := json.Unmarshal(item, &stored); err != nil {
			return nil, &DecodeError{Column: "students.education", Cause: err}
		}
		field := stored.Field
		if field == "" {
			field = stored.Department
		}
		entry := types.EducationEntry{
			Degree:      strings.TrimSpace(stored.Degree),
			Field:       strings.TrimSpace(field),
			Institution: strings.TrimSpace(stored.Institution),
		}
		if entry != (types.EducationEntry{}) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// decodeEntries reads students.projects or students.experience, which hold
// strings or objects. Objects are flattened to their known fields.
func decodeEntries(column string, raw []byte) ([]string, error) {
	if isEmptyJSON(raw) {
		return []string{}, nil
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Column: column, Cause: err}
	}

	entries := []string{}
	for _, item := range items {
		if len(entries) == types.MaxProfileEntries {
			break
		}
		var text string
		switch v := item.(type) {
		case string:
			text = strings.TrimSpace(v)
		case map[string]any:
			text = flattenEntry(v)
		default:
			text = strings.TrimSpace(fmt.Sprint(v))
		}
		if text != "" {
			entries = append(entries, text)
		}
	}
	return entries, nil
}

func flattenEntry(obj map[string]any) string {
	var parts []string
	for _, key := range entryKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, " - ")
}

// decodeRequirements reads hiring_sessions.requirements into a plain mapping.
// An empty document yields nil.
func decodeRequirements(raw []byte) (map[string]any, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &DecodeError{Column: "hiring_sessions.requirements", Cause: err}
	}
	return record, nil
}
