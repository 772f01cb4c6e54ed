// Package cli implements the interactive phono marketplace client.
//
// The REPL reads one command per line and dispatches to App methods. Commands
// that need more input (registration, selling a phone) prompt interactively
// through the helpers in input.go, which are swappable in tests.
package cli
