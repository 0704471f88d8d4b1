// Package render turns a populated table into one of several textual
// outputs through a single shared traversal: title, format-specific
// setup, header row, body rows, footnote block, format-specific
// cleanup. Only setup, cleanup, and escaping differ per target; the
// walk itself is format-agnostic and never mutates the table.
//
// Formats: plain text (aligned columns), HTML markup, LaTeX typesetting
// source. Escaping happens exactly once, at emission of an
// already-resolved cell string.
package render
