package cmd

const DESCRIPTION = `
autoclaim performs the daily claim on the Beamable hub and keeps
doing it: after every attempt it reads the countdown shown on the
claim page and schedules the next attempt, never later than the
daily cutoff (23:30 UTC by default).
`

const (
	RunDescription = `The run command performs one claim right away and then
keeps running, claiming again whenever the scheduled time
comes. It stops on Ctrl+C or SIGTERM.

Example:
        autoclaim run
                OR
        autoclaim --cookie "session=..."

`
	OnceDescription = `The once command performs a single claim cycle and prints
the time the next claim would be scheduled for.

Example:
        autoclaim once

`
	CheckDescription = `The check command parses a saved copy of the claim page
and prints the claim state, the countdown found and the
next claim time that would be scheduled from it.

Example:
        autoclaim check page.html

`
	CookieDescription = `The cookie command manages the session cookie stored in
the system keyring (or in a private file when no keyring
is available). A stored cookie is used when neither
--cookie nor --cookie-file is given.

Example:
        autoclaim cookie set "session=...; _ga=..."
        autoclaim cookie import ~/.mozilla/firefox/x.default/cookies.sqlite
        autoclaim cookie status
        autoclaim cookie delete

`
)
