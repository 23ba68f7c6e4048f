// Package dispatch hands a chosen handler to the external default-handler
// registry, normally `xdg-mime default <handler> <mime>`. One call, one
// synchronous subprocess.
package dispatch
