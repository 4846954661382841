// Package ui styles the status lines printed by the friendbook command.
//
// A single package-level [Palette] built from lipgloss styles backs the helpers [Title], [OK], [Fail], [Warn]
// and [Hint]. lipgloss drops colors automatically when output is not a terminal, so rendered text stays
// readable in pipes and tests.
package ui
