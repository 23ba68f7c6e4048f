// Package locator finds desktop-entry files under a set of application
// directories. The walk is lazy and single-pass; unreadable entries are
// skipped so one bad directory never hides the others.
package locator
