package scanner

import "github.com/dbarros/pasvm/lang/token"

// number scans an INT or REAL literal. Pascal integer and real literals are
// plain decimal: a run of digits, optionally followed by a '.' and another
// run of digits, which makes it a REAL. There is no exponent notation, no
// digit separators and no alternate bases in this language subset.
func (s *Scanner) number(line int) token.Token {
	start := s.off

	for isDigit(s.cur) {
		s.advance()
	}

	kind := token.INT
	if s.cur == '.' && isDigit(rune(s.peek())) {
		kind = token.REAL
		s.advance() // consume '.'
		for isDigit(s.cur) {
			s.advance()
		}
	}

	return token.Token{Kind: kind, Value: string(s.src[start:s.off]), Line: line}
}
