// Package config manages user-level settings stored at ~/.mimepick/config.yaml.
// Every key can be overridden from the environment with the MIMEPICK_ prefix
// (MIMEPICK_LOG, MIMEPICK_REGISTRY_COMMAND, ...). The file, when present, is
// validated against an embedded JSON schema before it is used.
package config
