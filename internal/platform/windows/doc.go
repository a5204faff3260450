// Package winplatform provides Windows platform support: window enumeration
// and synthetic input via user32/gdi32, and accessibility-tree access via
// the UI Automation COM API. On other platforms the package compiles as a
// no-op stub and registers nothing.
package winplatform
