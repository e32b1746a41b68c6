// Package syntax reads the declaration structure of C# source.
//
// Source is parsed with tree-sitter's C# grammar and the concrete syntax
// tree is folded into a small declaration model: usings, namespaces (braced
// and file-scoped), classes, structs, interfaces, records, enums, delegates
// and their members, with attributes, modifiers, parameters and `///`
// documentation attached. Statement bodies and expressions are kept as the
// source text between their delimiters.
//
// Types written in declarations become TypeExpr values, which the
// typecompare package compares.
//
// Parse reports the first ERROR or MISSING node of the tree as a
// *ParseError carrying the source range.
package syntax
