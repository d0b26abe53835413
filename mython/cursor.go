package mython

// tokenCursor walks a finished token slice. advance saturates: once the
// cursor reaches EOF it keeps returning the EOF token.
type tokenCursor struct {
	tokens []Token
	pos    int
}

func newTokenCursor(tokens []Token) *tokenCursor {
	return &tokenCursor{tokens: tokens}
}

func (c *tokenCursor) current() Token {
	return c.tokens[c.pos]
}

func (c *tokenCursor) advance() Token {
	if c.pos+1 < len(c.tokens) {
		c.pos++
	}
	return c.tokens[c.pos]
}
