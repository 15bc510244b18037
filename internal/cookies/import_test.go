package cookies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	future := time.Now().Add(time.Hour).Unix()
	ff := createFirefoxFixture(t, t.TempDir(), []fixtureRow{{"a", "1", "x.com", "/", future, 0, 0}})
	ch := createChromeFixture(t, t.TempDir(), []fixtureRow{{"a", "1", "x.com", "/", 0, 0, 0}})

	ns := filepath.Join(dir, "cookies.txt")
	if err := os.WriteFile(ns, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}
	junk := filepath.Join(dir, "junk.bin")
	if err := os.WriteFile(junk, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{"firefox", ff, FormatFirefox, false},
		{"chrome", ch, FormatChrome, false},
		{"netscape", ns, FormatNetscape, false},
		{"junk", junk, FormatUnknown, true},
		{"empty", empty, FormatUnknown, true},
		{"directory", dir, FormatUnknown, true},
		{"missing", filepath.Join(dir, "nope"), FormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("DetectFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_CopiesAndCleansUp(t *testing.T) {
	src := createFirefoxFixture(t, t.TempDir(), nil)
	if err := os.WriteFile(src+"-wal", []byte("wal"), 0600); err != nil {
		t.Fatal(err)
	}
	dst, cleanup, err := snapshot(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst == src {
		t.Fatal("snapshot must not return the source path")
	}
	if _, err := os.Stat(dst + "-wal"); err != nil {
		t.Errorf("wal companion not copied: %v", err)
	}
	cleanup()
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("expected snapshot removed, stat err = %v", err)
	}
}

func TestImport(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	ff := createFirefoxFixture(t, t.TempDir(), []fixtureRow{
		{"session", "abc", ".beamable.network", "/", future, 1, 1},
	})

	got, src, err := Import(ff, "hub.beamable.network")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Format != FormatFirefox || src.Path != ff {
		t.Errorf("unexpected source: %+v", src)
	}
	if BuildHeader(got) != "session=abc" {
		t.Errorf("unexpected header: %q", BuildHeader(got))
	}
}

func TestImport_NoCookiesForHost(t *testing.T) {
	ns := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(ns, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}
	_, src, err := Import(ns, "unrelated.org")
	if !errors.Is(err, ErrNoCookies) {
		t.Fatalf("expected ErrNoCookies, got %v", err)
	}
	if src == nil || src.Format != FormatNetscape {
		t.Errorf("expected netscape source, got %+v", src)
	}
}

func TestImportForURL(t *testing.T) {
	ns := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(ns, []byte(netscapeFixture), 0600); err != nil {
		t.Fatal(err)
	}
	got, _, err := ImportForURL(ns, "https://hub.beamable.network/modules/preregclaim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(got))
	}
	if _, _, err := ImportForURL(ns, "not a url"); err == nil {
		t.Fatal("expected error for url without host")
	}
}
