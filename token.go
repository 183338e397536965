package template

// TokenType classifies a lexical token produced by the lexer.
type TokenType int

const (
	// TokenError signals a lexical failure; Val carries the message.
	TokenError TokenType = iota

	// TokenText is literal template text outside of any tag.
	TokenText

	// TokenKeyword is a reserved word: and, or, not, in, true, false,
	// break, continue (the last two reserved but unused, per §9).
	TokenKeyword

	// TokenIdentifier is a variable/tag/parameter name, optionally
	// carrying a compartment prefix (l@, g@, p@, r@, a@).
	TokenIdentifier

	// TokenString is a quoted string literal with escapes resolved.
	TokenString

	// TokenInt is an integer literal.
	TokenInt

	// TokenFloat is a floating point literal.
	TokenFloat

	// TokenSymbol is an operator or punctuation symbol.
	TokenSymbol

	// TokenTagOpen marks "{%"; TokenTagClose marks "%}".
	TokenTagOpen
	TokenTagClose

	// TokenEmitOpen marks "{{"; TokenEmitClose marks "}}".
	TokenEmitOpen
	TokenEmitClose

	// TokenCommentOpen marks "{#"; TokenCommentClose marks "#}". The
	// lexer never tokenizes a comment's interior; these two bracket an
	// (empty) span purely so border flags on either side are available
	// to the whitespace controller.
	TokenCommentOpen
	TokenCommentClose

	// TokenEOF marks the end of the token stream.
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "Error"
	case TokenText:
		return "Text"
	case TokenKeyword:
		return "Keyword"
	case TokenIdentifier:
		return "Identifier"
	case TokenString:
		return "String"
	case TokenInt:
		return "Int"
	case TokenFloat:
		return "Float"
	case TokenSymbol:
		return "Symbol"
	case TokenTagOpen:
		return "TagOpen"
	case TokenTagClose:
		return "TagClose"
	case TokenEmitOpen:
		return "EmitOpen"
	case TokenEmitClose:
		return "EmitClose"
	case TokenCommentOpen:
		return "CommentOpen"
	case TokenCommentClose:
		return "CommentClose"
	case TokenEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// BorderFlag is the single character immediately inside a tag opener, or
// immediately before its closer, that controls adjacent whitespace (§4.2).
type BorderFlag byte

const (
	FlagNone  BorderFlag = 0
	FlagTrim  BorderFlag = '-' // strip through and including the nearest newline
	FlagClip  BorderFlag = '^' // strip up to but not including the nearest newline
	FlagNL    BorderFlag = '+' // insert a newline
	FlagSpace BorderFlag = '*' // insert a single space
)

func isBorderFlagChar(c byte) bool {
	switch BorderFlag(c) {
	case FlagTrim, FlagClip, FlagNL, FlagSpace:
		return true
	default:
		return false
	}
}

// Token is a single lexical element: its text, position, and (for a tag
// opener or closer) the border flag written beside its delimiter.
type Token struct {
	Typ  TokenType
	Val  string
	Line int
	Col  int

	// LeftFlag is set on a tag opener ("{%-" etc.), RightFlag on a tag
	// closer ("-%}" etc.); the parser hands them to the neighboring
	// TokenText spans when applying whitespace control (§4.2).
	LeftFlag  BorderFlag
	RightFlag BorderFlag
}
