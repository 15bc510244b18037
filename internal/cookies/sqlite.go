package cookies

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpochOffset is the number of seconds between 1601-01-01 and 1970-01-01 UTC.
const chromeEpochOffset int64 = 11_644_473_600

// sqliteStore describes how to read one browser's cookie table.
type sqliteStore struct {
	browser string
	query   string
	// unixExpiry converts the stored expiry column to Unix seconds.
	unixExpiry func(int64) int64
}

var (
	firefoxStore = sqliteStore{
		browser: "Firefox",
		query: `SELECT name, value, host, path, expiry, isSecure, isHttpOnly
			FROM moz_cookies ORDER BY path DESC, name ASC`,
		unixExpiry: func(v int64) int64 { return v },
	}
	chromeStore = sqliteStore{
		browser: "Chrome",
		query: `SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly
			FROM cookies WHERE value != '' ORDER BY path DESC, name ASC`,
		unixExpiry: chromeToUnix,
	}
)

// chromeToUnix converts microseconds since 1601-01-01 to Unix seconds.
func chromeToUnix(usec int64) int64 {
	return usec/1_000_000 - chromeEpochOffset
}

// ParseFirefox reads the cookies for host from a Firefox cookies.sqlite copy.
func ParseFirefox(dbPath, host string) ([]Cookie, error) {
	return firefoxStore.read(dbPath, host, time.Now())
}

// ParseChrome reads the unencrypted cookies for host from a Chrome Cookies copy.
// Encrypted values (empty value column) are skipped.
func ParseChrome(dbPath, host string) ([]Cookie, error) {
	return chromeStore.read(dbPath, host, time.Now())
}

func (s sqliteStore) read(dbPath, host string, now time.Time) ([]Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open %s cookie database: %w", s.browser, err)
	}
	defer db.Close()

	rows, err := db.Query(s.query)
	if err != nil {
		return nil, fmt.Errorf("query %s cookies: %w", s.browser, err)
	}
	defer rows.Close()

	var out []Cookie
	for rows.Next() {
		var (
			c                Cookie
			expiry           int64
			secure, httpOnly int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expiry, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("scan %s cookie: %w", s.browser, err)
		}
		if !hostMatches(c.Domain, host) {
			continue
		}
		unix := s.unixExpiry(expiry)
		if expiry != 0 && unix <= now.Unix() {
			continue
		}
		c.Expiry = time.Unix(unix, 0)
		c.Secure = secure != 0
		c.HttpOnly = httpOnly != 0
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s cookies: %w", s.browser, err)
	}
	return out, nil
}
