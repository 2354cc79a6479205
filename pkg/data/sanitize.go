package data

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	objRe  = regexp.MustCompile(`(?s)\{.*\}`)
	listRe = regexp.MustCompile(`(?s)\[.*\]`)
)

// SanitizeAnswer extracts the JSON object embedded in a model answer.
func SanitizeAnswer(ans string) (string, error) {
	match := objRe.FindString(ans)
	if match == "" {
		return "", errors.New("error sanitizing answer")
	}
	return match, nil
}

// SanitizeList extracts a JSON array of strings from a model answer. Model
// output is frequently wrapped in prose or code fences; anything that does
// not decode as []string is rejected. Single quotes are repaired once, the
// same way broken object answers are.
func SanitizeList(ans string) ([]string, error) {
	match := listRe.FindString(ans)
	if match == "" {
		return nil, errors.New("no list in answer")
	}

	var items []string
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		fixed := strings.ReplaceAll(match, "'", `"`)
		if err := json.Unmarshal([]byte(fixed), &items); err != nil {
			return nil, errors.New("list in answer is not valid json")
		}
	}

	out := items[:0]
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("empty list in answer")
	}
	return out, nil
}
