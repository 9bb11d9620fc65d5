// Package updater checks GitHub for newer CLI releases and prints a startup
// banner from a cached result. Termux installs update through pkg or git, so
// there is no binary self-replacement here; the banner just points at the
// release page.
package updater
