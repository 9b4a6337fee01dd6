package directive

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	reSuggestion = regexp.MustCompile(`(?is)<suggestion\s+type="([^"]*)"\s*>(.*?)</suggestion>`)
	reMemory     = regexp.MustCompile(`(?is)<memory(?:\s+category="([^"]*)")?\s*>(.*?)</memory>`)
	reEdit       = regexp.MustCompile(`(?is)<edit\s+targettype="([^"]*)"\s+targetid="([^"]*)"\s*>(.*?)</edit>`)
	reDelete     = regexp.MustCompile(`(?is)<delete\s+targettype="([^"]*)"\s+targetid="([^"]*)"\s*>(.*?)</delete>`)
	reMetadata   = regexp.MustCompile(`(?s)\[metadata:(.*)\]`)
	reKey        = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_]*\s*=`)
)

// ParseDataRequest scans a model reply for a data_request payload.
// Fenced json blocks are tried first, then a bare object located by
// balanced-brace scanning. Returns nil when nothing parseable is found
func ParseDataRequest(reply string) *DataRequest {
	for _, m := range reFencedJSON.FindAllStringSubmatch(reply, -1) {
		if dr := decodeDataRequest(m[1]); dr != nil {
			return dr
		}
	}

	start := strings.Index(reply, `{"data_request"`)
	if start < 0 {
		return nil
	}
	depth := 0
	for i := start; i < len(reply); i++ {
		switch reply[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return decodeDataRequest(reply[start : i+1])
			}
		}
	}
	return nil
}

func decodeDataRequest(raw string) *DataRequest {
	var envelope struct {
		DataRequest *DataRequest `json:"data_request"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil
	}
	return envelope.DataRequest
}

// ParseSuggestions extracts all well-formed suggestion spans.
// Unknown types are dropped silently
func ParseSuggestions(reply string) []Suggestion {
	var out []Suggestion
	for _, m := range reSuggestion.FindAllStringSubmatch(reply, -1) {
		typ := strings.ToLower(strings.TrimSpace(m[1]))
		if !SuggestionTypes[typ] {
			continue
		}
		body := strings.TrimSpace(m[2])
		meta := map[string]string{}
		if mm := reMetadata.FindStringSubmatchIndex(body); mm != nil {
			meta = parseMetadata(body[mm[2]:mm[3]])
			body = strings.TrimSpace(body[:mm[0]] + body[mm[1]:])
		}
		out = append(out, Suggestion{Type: typ, Description: body, Metadata: meta})
	}
	return out
}

// parseMetadata splits k=v pairs where a comma separates pairs only when
// followed by another key=. Commas inside values, a menu list say, survive
func parseMetadata(s string) map[string]string {
	meta := make(map[string]string)
	for _, pair := range splitPairs(s) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			meta[k] = v
		}
	}
	return meta
}

func splitPairs(s string) []string {
	var pairs []string
	begin := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && reKey.MatchString(s[i+1:]) {
			pairs = append(pairs, s[begin:i])
			begin = i + 1
		}
	}
	return append(pairs, s[begin:])
}

// ParseMemories extracts memory spans. Missing category defaults to general
func ParseMemories(reply string) []MemoryItem {
	var out []MemoryItem
	for _, m := range reMemory.FindAllStringSubmatch(reply, -1) {
		content := strings.TrimSpace(m[2])
		if content == "" {
			continue
		}
		cat := strings.ToLower(strings.TrimSpace(m[1]))
		if cat == "" {
			cat = "general"
		}
		out = append(out, MemoryItem{Category: cat, Content: content})
	}
	return out
}

// ParseEdits extracts edit spans. Field and NewValue lines are both
// mandatory, an edit missing either is dropped
func ParseEdits(reply string) []EditDirective {
	var out []EditDirective
	for _, m := range reEdit.FindAllStringSubmatch(reply, -1) {
		ed := EditDirective{
			TargetType: strings.TrimSpace(m[1]),
			TargetID:   strings.TrimSpace(m[2]),
		}
		for _, line := range strings.Split(m[3], "\n") {
			line = strings.TrimSpace(line)
			switch {
			case hasPrefixFold(line, "field:"):
				ed.Field = strings.TrimSpace(line[len("field:"):])
			case hasPrefixFold(line, "newvalue:"):
				ed.NewValue = strings.TrimSpace(line[len("newvalue:"):])
			case hasPrefixFold(line, "reason:"):
				ed.Reason = strings.TrimSpace(line[len("reason:"):])
			}
		}
		if ed.Field == "" || ed.NewValue == "" {
			continue
		}
		out = append(out, ed)
	}
	return out
}

// ParseDeletes extracts delete spans. Reason is optional
func ParseDeletes(reply string) []DeleteDirective {
	var out []DeleteDirective
	for _, m := range reDelete.FindAllStringSubmatch(reply, -1) {
		dd := DeleteDirective{
			TargetType: strings.TrimSpace(m[1]),
			TargetID:   strings.TrimSpace(m[2]),
		}
		for _, line := range strings.Split(m[3], "\n") {
			line = strings.TrimSpace(line)
			if hasPrefixFold(line, "reason:") {
				dd.Reason = strings.TrimSpace(line[len("reason:"):])
			}
		}
		out = append(out, dd)
	}
	return out
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
