// Package desktop reads desktop-entry files: bracketed section headers
// followed by Key=Value lines. It exposes just enough structure for the
// association pipeline to inspect section names and look up keys.
package desktop
