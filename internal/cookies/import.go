package cookies

import (
	"fmt"
	"net/url"
)

// Import reads the cookies for host from the browser store at path.
// SQLite stores are snapshotted before reading. ErrNoCookies is returned
// when the store is readable but holds nothing for host.
func Import(path, host string) ([]Cookie, *Source, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	src := &Source{Path: path, Format: format}

	var found []Cookie
	switch format {
	case FormatNetscape:
		found, err = ParseNetscape(path, host)
	case FormatFirefox:
		found, err = readSnapshot(path, host, ParseFirefox)
	case FormatChrome:
		found, err = readSnapshot(path, host, ParseChrome)
	default:
		return nil, nil, fmt.Errorf("unsupported cookie store at %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(found) == 0 {
		return nil, src, fmt.Errorf("%w %s in %s", ErrNoCookies, host, path)
	}
	return found, src, nil
}

// ImportForURL is Import with the host taken from rawURL.
func ImportForURL(path, rawURL string) ([]Cookie, *Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return nil, nil, fmt.Errorf("url %q has no host", rawURL)
	}
	return Import(path, u.Hostname())
}

func readSnapshot(path, host string, parse func(string, string) ([]Cookie, error)) ([]Cookie, error) {
	copied, cleanup, err := snapshot(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return parse(copied, host)
}
