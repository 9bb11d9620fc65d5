// Package platform detects the host environment (Termux, Android, desktop
// Linux) and provides cross-platform filesystem permission helpers. Detection
// is heuristic: any one Termux indicator is enough, matching how the Termux
// app itself advertises its presence.
package platform
