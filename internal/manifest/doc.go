// Package manifest handles parsing and validation of setup-plan manifests.
// A plan declares the Termux bootstrap packages, the Python packages with
// their ordered installation strategy chains, and the tool checks the doctor
// runs after setup. Plans are YAML and are validated against an embedded
// JSON Schema.
package manifest
