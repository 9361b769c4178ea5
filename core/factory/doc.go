// Package factory instantiates pluggable modules (metrics sinks, event
// publishers) from configuration. A module is described by a type name and a
// map of raw settings that the registered constructor decodes into its own
// struct with Decode.
package factory
