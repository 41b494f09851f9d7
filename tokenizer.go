package cardstream

// Token is one emission unit: a half-open byte range of the source text.
type Token struct {
	Offset int
	Length int
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Offset + t.Length
}

// isBreakByte reports JSON structural punctuation that ends a token on its
// own, so the stream advances in plausible generation steps even inside
// long unbroken payloads.
func isBreakByte(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ':', ',', '"':
		return true
	default:
		return false
	}
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Tokenize splits source into an ordered token sequence covering the whole
// text with no gaps or overlaps, cutting after punctuation and after runs
// of whitespace. The same source always yields the same sequence.
//
// Boundaries are byte positions but never split a UTF-8 rune: cuts happen
// only at ASCII punctuation and whitespace.
func Tokenize(source string) []Token {
	if source == "" {
		return nil
	}

	var tokens []Token
	start := 0
	i := 0
	for i < len(source) {
		c := source[i]
		switch {
		case isBreakByte(c):
			i++
			tokens = append(tokens, Token{Offset: start, Length: i - start})
			start = i
		case isSpaceByte(c):
			// Trailing whitespace rides along with the word before it.
			for i < len(source) && isSpaceByte(source[i]) {
				i++
			}
			tokens = append(tokens, Token{Offset: start, Length: i - start})
			start = i
		default:
			i++
		}
	}
	if start < len(source) {
		tokens = append(tokens, Token{Offset: start, Length: len(source) - start})
	}
	return tokens
}
