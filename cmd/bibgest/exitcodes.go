package main

// Exit codes used across commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not in a repository, bad config)
	ExitDataError   = 3 // Data error (nothing parseable, validation failure)
)
