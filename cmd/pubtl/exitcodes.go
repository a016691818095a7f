package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing researcher, rankings not found)
	ExitDataError   = 3 // Data error (malformed BibTeX, invalid ranking table)
	ExitNotFound    = 4 // Author not found on DBLP
	ExitAPIError    = 5 // DBLP API error (rate limit, network)
)
