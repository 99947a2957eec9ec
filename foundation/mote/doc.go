// Package mote is the front end of the mote scripting language.
//
// Package: mote
// Title: mote Language Front End
// Description: Turns source text into a syntax tree. The operator package
//              holds the operator table, parser holds the token model, lexer
//              and parser, and ast the tree. The Engine ties them together.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation
//
// Usage:
//
//	engine, _ := mote.NewEngine(mote.Options{Logger: logger})
//	root, err := engine.Parse(`if n < 2 { return n; } else { return fib(n - 1) + fib(n - 2); }`)
//	if err != nil {
//		offset, _ := mote.Offset(err)
//		// report err at offset
//	}
//	fmt.Println(root) // S-expression
package mote
