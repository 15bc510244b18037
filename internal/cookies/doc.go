// Package cookies turns the configured session cookies into the Cookie
// header sent with every claim request. Cookies come either from a raw
// "name=value; name2=value2" string or from a browser cookie store
// (Firefox or Chrome SQLite, Netscape text) filtered to the claim host.
//
// Cookie values are never logged; only names and the store path may be.
package cookies
