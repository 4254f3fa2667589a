package backlog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	taskIDPattern   = regexp.MustCompile(`\bT(\d+)\b`)
	priorityPattern = regexp.MustCompile(`\b(P[123])\b`)
)

// parallelMarker is the Speckit "can run in parallel" tag, ranked as P1.
const parallelMarker = "[P]"

// ExtractID returns the first "T<digits>" token in text, or "" if none.
func ExtractID(text string) string {
	digits := findToken(taskIDPattern, text)
	if digits == "" {
		return ""
	}

	return "T" + digits
}

// ExtractPriority returns the priority marked in text. "[P]" wins over an
// explicit P1-P3 token; text without either yields [DefaultPriority].
func ExtractPriority(text string) Priority {
	if strings.Contains(text, parallelMarker) {
		return PriorityHigh
	}

	match := findToken(priorityPattern, text)
	if match == "" {
		return DefaultPriority
	}

	return Priority(match)
}

// ResolvePriority returns the priority of an item titled title under the
// given space-joined heading titles. The headings are only consulted when
// the title alone yields the default, so an explicit "P2" in the title also
// falls through to them.
func ResolvePriority(title, headings string) Priority {
	p := ExtractPriority(title)
	if p != DefaultPriority {
		return p
	}

	return ExtractPriority(headings)
}

// findToken returns the first capture of re in text whose match is not
// glued to a letter, number or underscore. RE2's \b only treats ASCII as
// word characters, so without this "T042é" would yield "T042".
func findToken(re *regexp.Regexp, text string) string {
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		before, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		after, _ := utf8.DecodeRuneInString(text[loc[1]:])

		if isWordRune(before) || isWordRune(after) {
			continue
		}

		return text[loc[2]:loc[3]]
	}

	return ""
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
