// Package parser implements the streaming tokenizer and recursive-descent
// parser that turn JSON text into a *ujson.Value tree: a character-by-
// character scanner producing positioned tokens with precise error kinds,
// and a parser assembling a value tree under configurable structural
// constraints and relaxations (comments, identifier keys, duplicate keys).
package parser
