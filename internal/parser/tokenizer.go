// Package parser splits console input lines into argument tokens.
// It understands four paired grouping delimiters so that arguments may contain spaces:
// 'single', "double", <angle> and [square].
package parser

import "strings"

// groupMarkers maps each grouping opener to its closer.
var groupMarkers = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'<':  '>',
	'[':  ']',
}

// Tokenize splits a raw input line into argument tokens.
//
// A token that starts with a grouping opener runs to the matching closer and the delimiters
// are stripped. Any other token runs to the next space. When no terminator is found the
// token is the remainder of the line. Empty tokens are dropped, so an empty line yields none.
func Tokenize(line string) []string {
	tokens := make([]string, 0, 4)
	remaining := line

	for remaining != "" {
		var token string
		token, remaining = eatToken(remaining)
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// eatToken consumes one token from the front of s and returns it with the unconsumed rest.
func eatToken(s string) (token string, rest string) {
	if closer, grouped := groupMarkers[s[0]]; grouped {
		if end := strings.IndexByte(s[1:], closer); end >= 0 {
			end++ // index in s
			return s[1:end], s[end+1:]
		}
		return s, ""
	}

	if end := strings.IndexByte(s, ' '); end >= 0 {
		return s[:end], s[end+1:]
	}
	return s, ""
}

// JoinArgs joins tokens from start onwards with single spaces.
// Commands that take "the rest of the line" (print, time, schedule, bind) use it.
func JoinArgs(tokens []string, start int) string {
	if start >= len(tokens) {
		return ""
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(tokens[start:], " ")
}

// IsScriptLine reports whether a startup script line should be executed.
// Blank lines and lines starting with '#' are skipped.
func IsScriptLine(line string) bool {
	return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#")
}
