package template

import "strings"

// AutostripMode is the ambient, forward-applying text-stripping mode set by
// an AUTOSTRIP action or overridden locally by a STRIP segment (§4.2).
type AutostripMode int

const (
	ModeNone AutostripMode = iota
	ModeStrip
	ModeTrim
)

func (m AutostripMode) String() string {
	switch m {
	case ModeStrip:
		return "strip"
	case ModeTrim:
		return "trim"
	default:
		return "none"
	}
}

// ApplyWhitespace resolves one TEXT span's final literal contents from its
// border flags and the ambient autostrip mode in effect at that point in
// the source (§4.2). It is a pure function of its four inputs (testable
// property 6): when the mode is active it governs the whole span and the
// '-'/'^' edge flags are suppressed in its favor; when the mode is off,
// each edge is stripped independently per its own flag. '+'/'*' always
// insert, layered on top of whichever stripping rule applied.
func ApplyWhitespace(text string, left, right BorderFlag, mode AutostripMode) string {
	if mode != ModeNone {
		if mode == ModeStrip {
			text = strings.TrimSpace(text)
		} else {
			text = autotrim(text)
		}
	} else {
		switch left {
		case FlagTrim:
			text = stripLeftThrough(text)
		case FlagClip:
			text = stripLeftClip(text)
		}
		switch right {
		case FlagTrim:
			text = stripRightThrough(text)
		case FlagClip:
			text = stripRightClip(text)
		}
	}

	switch left {
	case FlagNL:
		text = "\n" + text
	case FlagSpace:
		text = " " + text
	}
	switch right {
	case FlagNL:
		text += "\n"
	case FlagSpace:
		text += " "
	}
	return text
}

const wsChars = " \t\r\n"

// autotrim splits on newlines, drops lines that are empty once leading
// whitespace is stripped, and strips the leading whitespace of every
// remaining line.
func autotrim(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		trimmed := strings.TrimLeft(ln, " \t\r")
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// leadingWhitespaceRun returns the length of the leading run of s composed
// only of characters in wsChars.
func leadingWhitespaceRun(s string) int {
	i := 0
	for i < len(s) && strings.IndexByte(wsChars, s[i]) >= 0 {
		i++
	}
	return i
}

func trailingWhitespaceRun(s string) int {
	i := len(s)
	for i > 0 && strings.IndexByte(wsChars, s[i-1]) >= 0 {
		i--
	}
	return i
}

// stripLeftThrough implements '-' on a span's left edge: remove the
// leading whitespace run through and including its first newline. A run
// without a newline is left untouched (there is nothing to strip "through").
func stripLeftThrough(s string) string {
	end := leadingWhitespaceRun(s)
	ws := s[:end]
	nl := strings.IndexByte(ws, '\n')
	if nl < 0 {
		return s
	}
	return ws[nl+1:] + s[end:]
}

// stripLeftClip implements '^' on a span's left edge: like stripLeftThrough
// but the newline itself is kept.
func stripLeftClip(s string) string {
	end := leadingWhitespaceRun(s)
	ws := s[:end]
	nl := strings.IndexByte(ws, '\n')
	if nl < 0 {
		return s
	}
	return "\n" + ws[nl+1:] + s[end:]
}

// stripRightThrough implements '-' on a span's right edge: remove the
// trailing whitespace run back through and including its last newline.
func stripRightThrough(s string) string {
	start := trailingWhitespaceRun(s)
	ws := s[start:]
	nl := strings.LastIndexByte(ws, '\n')
	if nl < 0 {
		return s
	}
	return s[:start] + ws[:nl]
}

// stripRightClip implements '^' on a span's right edge: like
// stripRightThrough but the newline itself is kept.
func stripRightClip(s string) string {
	start := trailingWhitespaceRun(s)
	ws := s[start:]
	nl := strings.LastIndexByte(ws, '\n')
	if nl < 0 {
		return s
	}
	return s[:start] + ws[:nl+1]
}
