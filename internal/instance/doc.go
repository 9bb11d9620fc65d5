// Package instance manages bot instance directories under
// ~/.termbot/instances/. Each instance owns a config/ tree (settings,
// messages, target groups, bot token) and a logs/ directory, and is tracked
// in a JSON registry so instances survive renames of their directories'
// contents.
package instance
