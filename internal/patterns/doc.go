// Package patterns holds the static registry of secret detectors. Each
// detector is data, not code: a named regex plus the type and base
// confidence it reports. The matcher never needs to change when a pattern
// is added here or supplied by a caller.
package patterns
