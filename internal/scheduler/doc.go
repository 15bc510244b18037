// Package scheduler holds the single pending claim timer.
// Arming a timer replaces whatever was pending, so at most one invocation
// is ever scheduled. Run polls for the due timer with a sleep capped at the
// poll interval (60 seconds by default), which bounds how late a timer can
// fire after NTP steps, DST transitions, or system sleep.
//
// The scheduler does not persist state; a restarted process starts empty.
package scheduler
