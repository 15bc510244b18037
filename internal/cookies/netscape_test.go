package cookies

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const netscapeFixture = "# Netscape HTTP Cookie File\n" +
	"# comment line\n" +
	"\n" +
	".beamable.network\tTRUE\t/\tTRUE\t4102444800\tsession\tabc\n" +
	"#HttpOnly_hub.beamable.network\tFALSE\t/\tFALSE\t0\tcsrf\txyz\n" +
	".beamable.network\tTRUE\t/\tFALSE\t946684800\told\tgone\n" +
	".other.com\tTRUE\t/\tFALSE\t0\tforeign\tnope\n" +
	"malformed line without tabs\n" +
	".beamable.network\tTRUE\t/\tFALSE\tnotanumber\tbad\tbad\n"

func TestReadNetscape(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := readNetscape(strings.NewReader(netscapeFixture), "hub.beamable.network", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d: %v", len(got), Names(got))
	}
	if got[0].Name != "session" || !got[0].Secure || got[0].HttpOnly {
		t.Errorf("unexpected first cookie: %+v", got[0])
	}
	if got[1].Name != "csrf" || !got[1].HttpOnly || got[1].Secure {
		t.Errorf("unexpected second cookie: %+v", got[1])
	}
}

func TestReadNetscape_CRLF(t *testing.T) {
	in := "# Netscape HTTP Cookie File\r\nexample.com\tFALSE\t/\tFALSE\t0\ta\t1\r\n"
	got, err := readNetscape(strings.NewReader(in), "example.com", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Value != "1" {
		t.Fatalf("unexpected cookies: %+v", got)
	}
}

func TestParseNetscape_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := ParseNetscape(path, "beamable.network")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(got))
	}
}

func TestParseNetscape_Missing(t *testing.T) {
	if _, err := ParseNetscape(filepath.Join(t.TempDir(), "nope.txt"), "x"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHostMatches(t *testing.T) {
	tests := []struct {
		domain, host string
		want         bool
	}{
		{"example.com", "example.com", true},
		{".example.com", "example.com", true},
		{".example.com", "hub.example.com", true},
		{"hub.example.com", "example.com", true},
		{"EXAMPLE.com", "example.COM", true},
		{"badexample.com", "example.com", false},
		{"other.com", "example.com", false},
	}
	for _, tt := range tests {
		if got := hostMatches(tt.domain, tt.host); got != tt.want {
			t.Errorf("hostMatches(%q, %q) = %v, want %v", tt.domain, tt.host, got, tt.want)
		}
	}
}
