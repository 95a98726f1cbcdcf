package decl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes a single declaration line.
//
// Int must precede Word: a run of digits followed by a non-word character is
// a number, while "1wire" stays a single word.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\f\v]+`},
	{Name: "Int", Pattern: `[0-9]+\b`},
	{Name: "Word", Pattern: `[A-Za-z0-9_]+`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semicolon", Pattern: `;`},
})
