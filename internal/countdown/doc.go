// Package countdown extracts the "time until next claim" signal from a claim
// page. Extraction is best effort and follows a fixed precedence: the
// structural HOURS/MINUTES markers, then the "Time to Claim: H : M" text,
// then a 12 hour fallback when the page says the item was already claimed.
// Malformed markup never produces an error, only an absent result.
package countdown
