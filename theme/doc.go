// Package theme holds the opaque styling records consumed by renderers:
// decimal precision, indentation, border style, and a handful of display
// markers. Core table logic never branches on a theme's identity — only
// the decimal precision reaches computation-cell formatting.
//
// Themes live in an explicit Registry: the built-ins ("default",
// "compact", "journal") are populated once at construction, and custom
// themes are validated when registered or loaded from a YAML file.
package theme
