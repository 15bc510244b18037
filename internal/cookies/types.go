package cookies

import (
	"errors"
	"time"
)

// ErrNoCookies is returned when a store holds no usable cookie for the host.
var ErrNoCookies = errors.New("no cookies found for host")

// Format identifies the format of a browser cookie store.
type Format int

const (
	FormatUnknown Format = iota
	// FormatFirefox is the moz_cookies SQLite schema.
	FormatFirefox
	// FormatChrome is the Chromium cookies SQLite schema. Only unencrypted
	// values are usable.
	FormatChrome
	// FormatNetscape is the tab separated cookies.txt format.
	FormatNetscape
)

func (f Format) String() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// Cookie is a single name/value pair plus the store metadata when imported.
// Value is sensitive and must never be logged.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expiry   time.Time
	Secure   bool
	HttpOnly bool
}

// Source describes where imported cookies came from.
type Source struct {
	Path   string
	Format Format
}
