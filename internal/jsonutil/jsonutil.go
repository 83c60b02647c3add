// Package jsonutil extracts well-formed JSON objects from noisy text.
//
// The store uses it as a salvage pass: a state file damaged by an
// interrupted write or stray bytes may still contain one intact JSON
// document, and recovering it beats discarding the user's tasks.
package jsonutil

import "encoding/json"

// ExtractFirst returns the first substring of text that is a valid JSON
// object. It matches objects only (starting with '{'), not arrays.
// Returns ("", false) when no valid object is present.
func ExtractFirst(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := matchingBrace(text, i)
		if end < 0 {
			continue
		}
		candidate := text[i : end+1]
		var decoded any
		if err := json.Unmarshal([]byte(candidate), &decoded); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// matchingBrace returns the index of the '}' closing the '{' at start,
// or -1 if the braces never balance. Braces inside double-quoted
// strings are ignored, and backslash escapes (including \") are
// honoured.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped character
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
