package cookies

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

type fixtureRow struct {
	Name     string
	Value    string
	Host     string
	Path     string
	Expiry   int64
	Secure   int
	HttpOnly int
}

func createSQLiteFixture(t *testing.T, path, schema, insert string, rows []fixtureRow) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	for _, r := range rows {
		if _, err := db.Exec(insert, r.Name, r.Value, r.Host, r.Path, r.Expiry, r.Secure, r.HttpOnly); err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return path
}

func createFirefoxFixture(t *testing.T, dir string, rows []fixtureRow) string {
	t.Helper()
	return createSQLiteFixture(t, filepath.Join(dir, "cookies.sqlite"),
		`CREATE TABLE moz_cookies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			host TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '/',
			expiry INTEGER NOT NULL DEFAULT 0,
			isSecure INTEGER NOT NULL DEFAULT 0,
			isHttpOnly INTEGER NOT NULL DEFAULT 0
		)`,
		`INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rows)
}

func createChromeFixture(t *testing.T, dir string, rows []fixtureRow) string {
	t.Helper()
	return createSQLiteFixture(t, filepath.Join(dir, "Cookies"),
		`CREATE TABLE cookies (
			creation_utc INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			host_key TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '/',
			expires_utc INTEGER NOT NULL DEFAULT 0,
			is_secure INTEGER NOT NULL DEFAULT 0,
			is_httponly INTEGER NOT NULL DEFAULT 0,
			encrypted_value BLOB DEFAULT ''
		)`,
		`INSERT INTO cookies (name, value, host_key, path, expires_utc, is_secure, is_httponly) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rows)
}

func toChrome(t time.Time) int64 {
	return (t.Unix() + chromeEpochOffset) * 1_000_000
}

func TestParseFirefox(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	past := time.Now().Add(-24 * time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []fixtureRow{
		{"sid", "abc", ".beamable.network", "/", future, 1, 1},
		{"lang", "en", "hub.beamable.network", "/", future, 0, 0},
		{"stale", "x", ".beamable.network", "/", past, 0, 0},
		{"foreign", "y", ".example.com", "/", future, 0, 0},
	})

	got, err := ParseFirefox(dbPath, "hub.beamable.network")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d: %v", len(got), Names(got))
	}
	byName := map[string]Cookie{}
	for _, c := range got {
		byName[c.Name] = c
	}
	if c := byName["sid"]; c.Value != "abc" || !c.Secure || !c.HttpOnly {
		t.Errorf("unexpected sid cookie: %+v", c)
	}
	if _, ok := byName["stale"]; ok {
		t.Error("expired cookie should be skipped")
	}
}

func TestParseChrome(t *testing.T) {
	future := toChrome(time.Now().Add(24 * time.Hour))
	dbPath := createChromeFixture(t, t.TempDir(), []fixtureRow{
		{"sid", "abc", ".beamable.network", "/", future, 1, 0},
		{"session_only", "s", ".beamable.network", "/", 0, 0, 0},
		{"encrypted", "", ".beamable.network", "/", future, 0, 0},
		{"stale", "x", ".beamable.network", "/", toChrome(time.Now().Add(-time.Hour)), 0, 0},
	})

	got, err := ParseChrome(dbPath, "beamable.network")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := Names(got)
	if len(names) != 2 {
		t.Fatalf("expected sid and session_only, got %v", names)
	}
	for _, c := range got {
		if c.Name == "encrypted" || c.Name == "stale" {
			t.Errorf("unexpected cookie %q", c.Name)
		}
	}
}

func TestChromeToUnix(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := chromeToUnix(toChrome(ts)); got != ts.Unix() {
		t.Fatalf("chromeToUnix = %d, want %d", got, ts.Unix())
	}
}

func TestParseFirefox_NotADatabase(t *testing.T) {
	if _, err := ParseFirefox(filepath.Join(t.TempDir(), "missing.sqlite"), "x"); err == nil {
		t.Fatal("expected error for missing database")
	}
}
