// Package strategy provides the concrete installation strategies a setup
// plan can chain: prebuilt wheel, source build, Termux system package, and
// pinned legacy version. All strategies shell out through a Runner so tests
// can substitute fakes for the real package managers.
package strategy
