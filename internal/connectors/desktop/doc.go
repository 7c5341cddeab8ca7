// Package desktop provides the app candidate provider backed by freedesktop
// .desktop entries.
package desktop
