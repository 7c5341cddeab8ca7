// Package filesystem provides the file candidate provider. It walks the
// configured roots and, once watching, signals when files are created,
// removed or renamed beneath them.
package filesystem
