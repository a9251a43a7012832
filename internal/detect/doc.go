// Package detect contains the core scanning pipeline: pattern matching,
// entropy scanning, Base64 unwrapping, false-positive suppression, and
// overlap resolution. This package is internal; external consumers should
// use the stable facade in pkg/core.
package detect
