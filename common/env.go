// Package common holds the endpoint defaults and environment variable names
// shared by the claim client and the command line.
package common

// Environment variable names for configuration.
const (
	// CookieEnv holds the raw "name=value; ..." cookie string.
	CookieEnv = "BEAMABLE_COOKIE"

	// CookieFileEnv points at a browser cookie store to import from.
	CookieFileEnv = "AUTOCLAIM_COOKIE_FILE"

	PageURLEnv   = "AUTOCLAIM_PAGE_URL"
	APIURLEnv    = "AUTOCLAIM_API_URL"
	UserAgentEnv = "AUTOCLAIM_USER_AGENT"

	LogFileEnv      = "AUTOCLAIM_LOG_FILE"
	TimeoutEnv      = "AUTOCLAIM_TIMEOUT"
	PollIntervalEnv = "AUTOCLAIM_POLL_INTERVAL"
	CutoffEnv       = "AUTOCLAIM_CUTOFF"

	// EnvFileEnv names an explicit .env file, skipping .env.local and .env.
	EnvFileEnv = "AUTOCLAIM_ENV_FILE"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "AUTOCLAIM_DEBUG"
)
