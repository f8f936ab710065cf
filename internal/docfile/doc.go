// Package docfile reads and writes scanned documents as YAML or JSON files
// and reads verse input.
//
// The format is chosen by file extension: .json selects JSON and anything
// else YAML. Both formats keep the difference between an unset field and an
// empty string, and both are parsed strictly: unknown keys are rejected.
package docfile
