package manifest

// Plan is the root of a setup-plan manifest.
type Plan struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// SystemPackages are installed up front with the Termux package manager
	// (compilers, headers, TLS roots). Failures here are warnings; the
	// per-package strategy chains below decide what is fatal.
	SystemPackages []string `yaml:"system_packages,omitempty" json:"system_packages,omitempty"`

	// Packages are resolved one at a time, in declaration order.
	Packages []Package `yaml:"packages" json:"packages"`

	// Tools are checked by the doctor after setup.
	Tools []ToolCheck `yaml:"tools,omitempty" json:"tools,omitempty"`
}

// Package declares one installation target and its ordered fallback chain.
type Package struct {
	Name       string `yaml:"name" json:"name"`
	Constraint string `yaml:"constraint,omitempty" json:"constraint,omitempty"`

	// Strategies is the ordered list of strategy identifiers to try.
	Strategies []string `yaml:"strategies" json:"strategies"`

	// Pinned is the exact legacy version used by the pinned-legacy strategy.
	Pinned string `yaml:"pinned,omitempty" json:"pinned,omitempty"`

	// SystemName is the Termux package name used by the system-package
	// strategy when it differs from Name (e.g., python-cryptography).
	SystemName string `yaml:"system_name,omitempty" json:"system_name,omitempty"`

	// Optional marks a package whose exhaustion should not fail the setup
	// run; the caller reports it and continues with reduced functionality.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`

	// TimeoutSeconds overrides the per-attempt timeout for this package
	// (source builds of native extensions can run long).
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

// ToolCheck declares a binary the doctor verifies after setup.
type ToolCheck struct {
	Name       string `yaml:"name" json:"name"`
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
}
