// Package cli defines the Cobra command tree for mimepick. The root command
// runs the interactive pipeline; the other files each register one
// subcommand. Commands delegate to internal packages for the work and only
// handle flags, output formatting, and process-level concerns.
package cli
