// Package config provides the configuration of latinscan: scan settings
// from CLI flags, the optional .latinscan file, the archive keys of the
// rule relations and the XDG directories used for the scan history.
package config
