package manifest

// Default returns the built-in setup plan for a Termux Telegram-bot
// environment. It mirrors what the Android bootstrap has always installed:
// the toolchain and TLS packages up front, then the Python dependencies,
// with cryptography carrying the full four-step fallback chain because its
// native extension routinely has no Android wheel.
func Default() *Plan {
	return &Plan{
		Name:        "android-bot-env",
		Description: "Termux environment for running Telegram bot instances",
		SystemPackages: []string{
			"python", "python-dev", "git", "openssl", "openssl-dev",
			"libffi", "libffi-dev", "clang", "make", "cmake",
			"binutils", "libc++", "pkg-config", "ca-certificates",
		},
		Packages: []Package{
			{
				Name:       "cryptography",
				Constraint: ">=41.0.0 <42.0.0",
				Strategies: []string{"prebuilt-wheel", "source-build", "system-package", "pinned-legacy"},
				Pinned:     "40.0.2",
				SystemName: "python-cryptography",
				// Source builds of the Rust extension can run very long.
				TimeoutSeconds: 1800,
			},
			{
				Name:       "python-telegram-bot",
				Constraint: ">=20.0.0",
				Strategies: []string{"prebuilt-wheel", "source-build"},
			},
			{
				Name:       "aiohttp",
				Strategies: []string{"prebuilt-wheel", "source-build"},
			},
			{
				Name:       "apscheduler",
				Strategies: []string{"prebuilt-wheel", "source-build"},
			},
			{
				Name:       "colorama",
				Strategies: []string{"prebuilt-wheel"},
				Optional:   true,
			},
		},
		Tools: []ToolCheck{
			{Name: "python", MinVersion: "3.9.0"},
			{Name: "pip"},
			{Name: "git"},
			{Name: "openssl"},
		},
	}
}
