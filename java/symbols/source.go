package symbols

import "unicode/utf8"

// Source is the raw text of one Java compilation unit.
type Source []byte

// at returns the logical character starting at pos and how many bytes of
// the source it occupies. It returns (0, 0) at or past the end.
func (s Source) at(pos int) (rune, int) {
	if pos < 0 || pos >= len(s) {
		return 0, 0
	}
	if s[pos] == '\\' {
		if r, w, ok := s.unicodeEscape(pos); ok {
			return r, w
		}
	}
	return rune(s[pos]), 1
}

// before returns the logical character that ends at pos.
func (s Source) before(pos int) (rune, bool) {
	if pos <= 0 || pos > len(s) {
		return 0, false
	}
	if pos >= 6 && isHex(s[pos-1]) {
		i := pos - 4
		for i > 0 && s[i-1] == 'u' {
			i--
		}
		if i < pos-4 && i > 0 && s[i-1] == '\\' {
			if r, w, ok := s.unicodeEscape(i - 1); ok && i-1+w == pos {
				return r, true
			}
		}
	}
	return rune(s[pos-1]), true
}

func (s Source) unicodeEscape(pos int) (rune, int, bool) {
	i := pos + 1
	for i < len(s) && s[i] == 'u' {
		i++
	}
	if i == pos+1 || i+4 > len(s) {
		return 0, 0, false
	}
	var r rune
	for _, b := range s[i : i+4] {
		if !isHex(b) {
			return 0, 0, false
		}
		r = r<<4 | hexValue(b)
	}
	n := 0
	for j := pos - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	if n%2 != 0 {
		return 0, 0, false
	}
	return r, i + 4 - pos, true
}

// appendChar appends the text of the character at pos to buf: the raw
// byte, or the decoded character when pos starts a unicode escape.
func (s Source) appendChar(buf []byte, pos int) ([]byte, int) {
	r, w := s.at(pos)
	if w == 1 {
		return append(buf, s[pos]), 1
	}
	return utf8.AppendRune(buf, r), w
}

// matchAt reports whether token starts at pos and returns the position
// just after it.
func (s Source) matchAt(token string, pos int) (int, bool) {
	for i := 0; i < len(token); i++ {
		r, w := s.at(pos)
		if w == 0 || r != rune(token[i]) {
			return 0, false
		}
		pos += w
	}
	return pos, true
}

// SkipTrivia returns the first position at or after pos that is not
// whitespace, a line comment or a block comment. An unterminated block
// comment extends to the end of the source.
func (s Source) SkipTrivia(pos int) int {
	for pos < len(s) {
		r, w := s.at(pos)
		if isSpace(r) {
			pos += w
			continue
		}
		if r != '/' {
			return pos
		}
		next, nw := s.at(pos + w)
		switch next {
		case '/':
			pos = s.skipLineComment(pos + w + nw)
		case '*':
			pos = s.skipBlockComment(pos + w + nw)
		default:
			return pos
		}
	}
	return pos
}

func (s Source) skipLineComment(pos int) int {
	for pos < len(s) {
		r, w := s.at(pos)
		pos += w
		if r == '\n' {
			return pos
		}
	}
	return len(s)
}

func (s Source) skipBlockComment(pos int) int {
	for pos < len(s) {
		r, w := s.at(pos)
		if r == '*' {
			if next, nw := s.at(pos + w); next == '/' {
				return pos + w + nw
			}
		}
		pos += w
	}
	return len(s)
}

func (s Source) skipSpace(pos int) int {
	for pos < len(s) {
		r, w := s.at(pos)
		if !isSpace(r) {
			return pos
		}
		pos += w
	}
	return pos
}

// skipLineEnd moves past the whitespace following pos when it contains a
// newline, stopping right after that newline. Otherwise pos is returned.
func (s Source) skipLineEnd(pos int) int {
	for p := pos; p < len(s); {
		r, w := s.at(p)
		if !isSpace(r) {
			break
		}
		p += w
		if r == '\n' {
			return p
		}
	}
	return pos
}

// NextSymbol skips trivia and returns the next symbol together with the
// position right after it. A symbol is a maximal run of identifier
// characters or a single other character. At the end of the source the
// symbol is empty.
func (s Source) NextSymbol(pos int) (string, int) {
	if pos >= len(s) {
		return "", pos
	}
	pos = s.SkipTrivia(pos)
	if pos >= len(s) {
		return "", pos
	}
	if r, _ := s.at(pos); !isIdentifierChar(r) {
		buf, w := s.appendChar(nil, pos)
		return string(buf), pos + w
	}
	var buf []byte
	for pos < len(s) {
		if r, _ := s.at(pos); !isIdentifierChar(r) {
			break
		}
		var w int
		buf, w = s.appendChar(buf, pos)
		pos += w
	}
	return string(buf), pos
}

// FindToken returns the position of the next occurrence of token at or
// after pos that lies outside comments, string literals and character
// literals, or len(s) when there is none.
//
// When alnum is set, an occurrence touching an identifier character on
// either side does not count. The token ")" only matches once depth,
// the number of unclosed parentheses, is zero.
func (s Source) FindToken(token string, pos int, alnum bool, depth int) int {
	for pos+len(token) <= len(s) {
		pos = s.SkipTrivia(pos)
		if pos == len(s) {
			break
		}
		if token != ")" || depth == 0 {
			if end, ok := s.matchAt(token, pos); ok && !(alnum && s.touchesIdentifier(pos, end)) {
				return pos
			}
		}
		r, w := s.at(pos)
		switch r {
		case '\'':
			pos = s.skipCharLiteral(pos, w)
		case '"':
			pos = s.skipStringLiteral(pos + w)
		case '(':
			depth++
			pos += w
		case ')':
			if depth != 0 {
				depth--
			}
			pos += w
		default:
			pos += w
		}
	}
	return len(s)
}

func (s Source) touchesIdentifier(start, end int) bool {
	if r, ok := s.before(start); ok && isIdentifierChar(r) {
		return true
	}
	if r, w := s.at(end); w != 0 && isIdentifierChar(r) {
		return true
	}
	return false
}

// skipCharLiteral returns the position after the character literal whose
// opening quote at pos is w bytes long.
func (s Source) skipCharLiteral(pos, w int) int {
	if w == 1 && pos+4 <= len(s) && string(s[pos:pos+4]) == `'\''` {
		return pos + 4
	}
	pos += w
	for pos < len(s) {
		r, w := s.at(pos)
		pos += w
		if r == '\'' {
			return pos
		}
	}
	return len(s)
}

// skipStringLiteral returns the position after the closing quote of the
// string literal whose body starts at pos.
func (s Source) skipStringLiteral(pos int) int {
	for pos < len(s) {
		if s[pos] == '\\' && pos+1 < len(s) && (s[pos+1] == '\\' || s[pos+1] == '"') {
			pos += 2
			continue
		}
		r, w := s.at(pos)
		pos += w
		if r == '"' {
			return pos
		}
	}
	return len(s)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isPunct(r rune) bool {
	return ('!' <= r && r <= '/') || (':' <= r && r <= '@') ||
		('[' <= r && r <= '`') || ('{' <= r && r <= '~')
}

// isIdentifierChar reports whether r can be part of a symbol. Everything
// but ASCII whitespace and ASCII punctuation qualifies, except that '_' is
// always an identifier character and '$' never is.
func isIdentifierChar(r rune) bool {
	if r == '_' || r >= utf8.RuneSelf {
		return true
	}
	return !isSpace(r) && !isPunct(r)
}

func isHex(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func hexValue(b byte) rune {
	switch {
	case b <= '9':
		return rune(b - '0')
	case b <= 'F':
		return rune(b-'A') + 10
	default:
		return rune(b-'a') + 10
	}
}
