// Package main provides the entry point for the latinscan CLI.
//
// latinscan scans Latin verse as dactylic hexameter. For every line it finds
// a pronunciation that fits the meter, or reports the line as defective.
//
// Usage:
//
//	latinscan scan aeneid.txt
//	latinscan rewrite --rules NORMALIZE,PRONOUNCE aeneid.txt
//
// See --help for all available options.
package main

// main is the entry point for latinscan.
func main() {
	Execute()
}
