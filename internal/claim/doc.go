// Package claim runs one claim attempt against the claim page and API and
// arms the scheduler for the next attempt.
//
// A cycle fetches the page, submits the daily claim when the page is not
// yet claimed, and derives the next attempt from the page countdown. Every
// computed time passes through the daily cutoff before a timer is armed;
// whenever no usable countdown is found the default policy is armed instead.
package claim
