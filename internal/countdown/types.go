package countdown

import (
	"fmt"
	"time"
)

// ClaimedMarker is the text the claim page shows once the daily item is taken.
const ClaimedMarker = "ITEM CLAIMED"

// FallbackHours is the offset used when the page is claimed but shows no countdown.
const FallbackHours = 12

// ClaimState is the claim status derived from one fetched page.
type ClaimState int

const (
	// Unknown means the page could not be fetched or inspected.
	Unknown ClaimState = iota
	// Unclaimed means the page does not carry the claimed marker.
	Unclaimed
	// Claimed means the page carries the claimed marker.
	Claimed
)

func (s ClaimState) String() string {
	switch s {
	case Unclaimed:
		return "unclaimed"
	case Claimed:
		return "claimed"
	default:
		return "unknown"
	}
}

// Source identifies which rule produced a Result.
type Source string

const (
	// SourceMarkers is the number ahead of the HOURS and MINUTES labels.
	SourceMarkers Source = "markers"
	// SourceText is the "Time to Claim: H : M" pattern.
	SourceText Source = "text"
	// SourceFallback is the fixed offset used for a claimed page without a countdown.
	SourceFallback Source = "fallback"
)

// Result is a parsed countdown. Minutes is always within 0-59.
type Result struct {
	Hours   int
	Minutes int
	Source  Source
}

// Duration returns the countdown as a time.Duration.
func (r Result) Duration() time.Duration {
	return time.Duration(r.Hours)*time.Hour + time.Duration(r.Minutes)*time.Minute
}

// After returns the absolute time the countdown ends, counted from now.
func (r Result) After(now time.Time) time.Time {
	return now.Add(r.Duration())
}

func (r Result) String() string {
	return fmt.Sprintf("%d hours %d minutes", r.Hours, r.Minutes)
}
