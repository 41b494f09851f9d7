package cardstream

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Container frame states tracked while walking a prefix. Objects cycle
// through key / colon / value / comma positions; arrays through value /
// comma positions.
const (
	objWantKeyOrEnd = iota
	objWantColon
	objWantValue
	objWantCommaOrEnd
	arrWantValueOrEnd
	arrWantCommaOrEnd
)

// frame is one open container on the repair stack.
type frame struct {
	open  byte // '{' or '['
	state int
	// safe is the offset just past the last complete value inside this
	// container (or just past the opening bracket). Truncating the prefix
	// back to safe discards the dangling member, including any comma
	// written after the last complete value.
	safe int
}

// Reconstruct derives the largest valid JSON value contained in a prefix of
// card source text. A complete, valid prefix passes through unchanged
// (modulo surrounding whitespace). A truncated prefix is repaired: the last
// syntactically incomplete token is discarded or minimally completed, then
// closing quotes and brackets are synthesized innermost first.
//
// The second return is false when no JSON value can be derived at all, for
// example an empty prefix, a bare "{", or text that is not JSON. Callers
// keep their previous snapshot in that case. Reconstruct never panics past
// its boundary: any prefix it cannot repair reports false.
func Reconstruct(prefix string) (string, bool) {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return "", false
	}

	// Strict fast path: covers the final tick and instant mode.
	if gjson.Valid(trimmed) {
		return trimmed, true
	}

	repaired, ok := repair(trimmed)
	if !ok || !gjson.Valid(repaired) {
		return "", false
	}
	return repaired, true
}

// repair walks the prefix with a container stack, resolves the dangling
// tail, and appends synthesized closers. The result still has to pass a
// strict validity check in Reconstruct; repair itself only has to be
// careful enough to never mangle a recoverable prefix.
func repair(s string) (string, bool) {
	var frames []frame

	inString := false
	escStart := -1    // offset of the backslash of an in-flight escape
	uniRemaining := 0 // hex digits still expected in a \uXXXX escape
	tokenStart := -1  // start of an in-flight number or literal token

	// completeValue records that a value ended just before offset end,
	// advancing the enclosing container's state and safe point.
	completeValue := func(end int) {
		if len(frames) == 0 {
			return
		}
		f := &frames[len(frames)-1]
		f.safe = end
		if f.open == '{' {
			f.state = objWantCommaOrEnd
		} else {
			f.state = arrWantCommaOrEnd
		}
	}

	// endToken closes an in-flight number/literal token, if any.
	endToken := func(end int) {
		if tokenStart < 0 {
			return
		}
		completeValue(end)
		tokenStart = -1
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if uniRemaining > 0 {
				if !isHexByte(c) {
					return "", false
				}
				uniRemaining--
				if uniRemaining == 0 {
					escStart = -1
				}
				continue
			}
			if escStart >= 0 {
				if c == 'u' {
					uniRemaining = 4
				} else {
					escStart = -1
				}
				continue
			}
			switch c {
			case '\\':
				escStart = i
			case '"':
				inString = false
				if len(frames) > 0 && frames[len(frames)-1].open == '{' &&
					frames[len(frames)-1].state == objWantKeyOrEnd {
					frames[len(frames)-1].state = objWantColon
				} else {
					completeValue(i + 1)
				}
			}
			continue
		}

		switch {
		case isSpaceByte(c):
			endToken(i)
		case c == '"':
			endToken(i)
			inString = true
			escStart = -1
			uniRemaining = 0
		case c == '{' || c == '[':
			endToken(i)
			st := objWantKeyOrEnd
			if c == '[' {
				st = arrWantValueOrEnd
			}
			frames = append(frames, frame{open: c, state: st, safe: i + 1})
		case c == '}':
			endToken(i)
			if len(frames) == 0 || frames[len(frames)-1].open != '{' {
				return "", false
			}
			frames = frames[:len(frames)-1]
			completeValue(i + 1)
		case c == ']':
			endToken(i)
			if len(frames) == 0 || frames[len(frames)-1].open != '[' {
				return "", false
			}
			frames = frames[:len(frames)-1]
			completeValue(i + 1)
		case c == ':':
			endToken(i)
			if len(frames) == 0 || frames[len(frames)-1].open != '{' {
				return "", false
			}
			frames[len(frames)-1].state = objWantValue
		case c == ',':
			endToken(i)
			if len(frames) == 0 {
				return "", false
			}
			f := &frames[len(frames)-1]
			if f.open == '{' {
				f.state = objWantKeyOrEnd
			} else {
				f.state = arrWantValueOrEnd
			}
		default:
			if tokenStart < 0 {
				tokenStart = i
			}
		}
	}

	// Resolve the dangling tail at end of prefix.
	end := len(s)
	closeQuote := false

	switch {
	case inString:
		if escStart >= 0 {
			// Cut an unfinished escape sequence (including a partial
			// \uXXXX) before closing, so the string is closed exactly once.
			end = escStart
		}
		if len(frames) > 0 && frames[len(frames)-1].open == '{' &&
			frames[len(frames)-1].state == objWantKeyOrEnd {
			// Partial object key: no value can follow, drop the member.
			end = frames[len(frames)-1].safe
		} else {
			closeQuote = true
		}

	case tokenStart >= 0:
		tok := s[tokenStart:end]
		switch {
		case tok == "true" || tok == "false" || tok == "null":
			// Complete literal cut exactly at the end of the prefix.
		case tok[0] == '-' || (tok[0] >= '0' && tok[0] <= '9'):
			// Keep a trailing number when trimming exponent/sign/point
			// debris leaves something valid; otherwise drop the member.
			kept := strings.TrimRight(tok, "-+.eE")
			if kept != "" && gjson.Valid(kept) {
				end = tokenStart + len(kept)
			} else if len(frames) > 0 {
				end = frames[len(frames)-1].safe
			} else {
				return "", false
			}
		default:
			// Partial literal such as "tru", or garbage.
			if len(frames) == 0 {
				return "", false
			}
			end = frames[len(frames)-1].safe
		}

	default:
		if len(frames) > 0 {
			f := frames[len(frames)-1]
			dangling := f.state == objWantColon || f.state == objWantValue ||
				(f.open == '{' && f.state == objWantKeyOrEnd && f.safe < end) ||
				(f.open == '[' && f.state == arrWantValueOrEnd && f.safe < end)
			if dangling {
				// Key with no value yet, or a trailing comma.
				end = f.safe
			}
		}
	}

	kept := s[:end]

	// A prefix shorter than the shortest useful opening reconstructs to
	// nothing but empty containers; report no result instead.
	if strings.TrimLeft(kept, "{[ \t\n\r") == "" {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(kept) + len(frames) + 1)
	b.WriteString(kept)
	if closeQuote {
		b.WriteByte('"')
	}
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].open == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String(), true
}

func isHexByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
