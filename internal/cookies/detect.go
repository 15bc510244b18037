package cookies

import (
	"bufio"
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

var sqliteMagic = []byte("SQLite format 3\x00")

// DetectFormat inspects the file at path and reports its cookie store format.
func DetectFormat(path string) (Format, error) {
	if err := checkRegularFile(path); err != nil {
		return FormatUnknown, err
	}
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open cookie store: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, err := br.Peek(len(sqliteMagic))
	if err == nil && bytes.Equal(head, sqliteMagic) {
		return detectSQLiteSchema(path)
	}

	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("read cookie store: %w", err)
	}
	switch strings.TrimRight(first, "\r\n") {
	case "# Netscape HTTP Cookie File", "# HTTP Cookie File":
		return FormatNetscape, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported cookie store at %s", path)
}

func detectSQLiteSchema(path string) (Format, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return FormatUnknown, fmt.Errorf("open sqlite cookie store: %w", err)
	}
	defer db.Close()

	for _, probe := range []struct {
		table  string
		format Format
	}{
		{"moz_cookies", FormatFirefox},
		{"cookies", FormatChrome},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, probe.table).Scan(&name)
		if err == nil {
			return probe.format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unsupported cookie database schema at %s", path)
}

func checkRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cookie store not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a cookie store file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("cookie store at %s is empty", path)
	}
	return nil
}
