// Package decl extracts component and connection declarations from a
// multi-line text body.
//
// # Grammar
//
// The grammar is line-oriented; tokens within a line may be separated by
// any amount of whitespace:
//
//	component <name> <type> [ "(" <int> { "," <int> } ")" ] [";"]
//	connect <name> <int> to <name> <int> [";"]
//
// Names and types are word tokens ([A-Za-z0-9_]+). Integers are
// non-negative decimal literals. A trailing "//" comment is ignored.
// A declaration must span the whole line.
//
// # Recovery
//
// Every other line (blank lines, prose, C code, malformed declarations) is
// classified as [Unrecognized] and skipped. The package never fails on
// input text: this is a best-effort extractor for generated code, not a
// compiler.
//
// # Usage
//
//	src := decl.Parse(text)
//	for _, c := range src.Components() { ... }
//	for _, conn := range src.Connections { ... }
//
// Use [Statements] to see how each line was classified.
//
// # Implementation
//
// Lines are tokenized with a participle lexer and matched against two
// statement shapes built with [github.com/alecthomas/participle/v2].
// The compiled grammar is immutable and shared by all callers.
package decl
