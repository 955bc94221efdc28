// Package deck holds the carousel presentation logic: viewport
// classification, per-card presentation hints, active-card navigation and
// the pointer swipe state machine.
//
// Allowed here:
// - pure hint math and clamping policy
// - the gesture protocol (arm, track, commit, release)
// - binding reconciliation for viewport changes
//
// Not allowed here:
// - terminal rendering, ANSI, or any bubbletea types
// - storage access
package deck
