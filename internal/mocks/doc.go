// Package mocks provides hand-written mock implementations of the store and
// service interfaces for use in tests. Each mock exposes optional function
// fields; when a field is nil the mock falls back to its configured default
// values.
package mocks
