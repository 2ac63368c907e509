// Package errors provides the coded, actionable errors printed by the
// tinyvue CLI.
//
// # Error Categories
//
//   - component: the component file is missing or malformed
//   - runtime: mounting or rendering failed
//   - cli: bad command-line input
//
// # Error Codes
//
// Each error has a code (e.g., "E002") that maps to a short message, a
// longer explanation and a documentation URL.
//
// # Usage
//
//	err := errors.New("E002").
//	    WithLocation("counter.yaml", 4, 3).
//	    WithSuggestion("data must be a mapping")
//
//	errors.PrintError(err)
//	// ERROR E002: Invalid component file
//	//
//	//   counter.yaml:4:3
//	//
//	//        2 │ template: "<p>{{ count }}</p>"
//	//        3 │ data:
//	//   →    4 │   - 1
//	//          │   ^
//	//
//	//   Hint: data must be a mapping
//
// Colours are used only when stderr is a terminal.
package errors
