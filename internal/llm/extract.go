package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// errNoJSON is returned by ExtractJSON when the text holds no complete
// JSON object or array.
var errNoJSON = errors.New("no JSON value found in response text")

// ExtractJSON returns the first balanced JSON object or array found in
// text. Models often wrap structured output in code fences or prose, so
// the scan skips everything before the first '{' or '[' and tracks
// nesting depth until the matching close. Brackets inside JSON strings
// are ignored. Candidates that fail to parse are skipped and the scan
// resumes after their opening bracket.
func ExtractJSON(text string) (json.RawMessage, error) {
	for start := 0; start < len(text); {
		i := strings.IndexAny(text[start:], "{[")
		if i < 0 {
			break
		}
		i += start

		if end := matchClose(text, i); end > 0 {
			candidate := text[i:end]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
		start = i + 1
	}
	return nil, errNoJSON
}

// matchClose returns the index just past the bracket that closes the one
// at open, or -1 if the text ends first.
func matchClose(text string, open int) int {
	var stack []byte
	inString := false
	escaped := false

	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// structuredContent extracts and validates the JSON value in a raw model
// reply when the request carries a schema. Without a schema the text is
// returned unchanged.
func structuredContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(text), nil
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, &ErrInvalidResponse{Schema: schema.Name, Content: json.RawMessage(text), Err: err}
	}
	if err := validateResponse(schema, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
