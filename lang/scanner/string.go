package scanner

import "github.com/dbarros/pasvm/lang/token"

// stringLit scans a single-quoted Pascal string literal. A doubled quote
// ('') inside the literal is the escape for a literal quote character;
// there is no backslash-escape syntax. The opening quote is s.cur on
// entry.
func (s *Scanner) stringLit(line int) token.Token {
	s.advance() // consume opening '\''
	s.sb.Reset()

	for {
		switch s.cur {
		case -1, '\n':
			s.error("string literal not terminated")
			return token.Token{Kind: token.STRING, Value: s.sb.String(), Line: line}
		case '\'':
			s.advance()
			if s.cur == '\'' {
				// doubled quote: literal quote character in the value
				s.sb.WriteByte('\'')
				s.advance()
				continue
			}
			return token.Token{Kind: token.STRING, Value: s.sb.String(), Line: line}
		default:
			s.sb.WriteRune(s.cur)
			s.advance()
		}
	}
}
