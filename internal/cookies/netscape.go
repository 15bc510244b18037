package cookies

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscape reads the cookies for host from a Netscape cookies.txt file.
func ParseNetscape(path, host string) ([]Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netscape cookie file: %w", err)
	}
	defer f.Close()
	return readNetscape(f, host, time.Now())
}

// readNetscape parses the seven tab separated fields of each line:
// domain, include-subdomains, path, secure, expiry, name, value.
// Comment lines are skipped except the #HttpOnly_ prefix; malformed lines,
// expired cookies and other hosts are dropped.
func readNetscape(r io.Reader, host string, now time.Time) ([]Cookie, error) {
	var out []Cookie
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		httpOnly := strings.HasPrefix(line, httpOnlyPrefix)
		if httpOnly {
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		f := strings.Split(line, "\t")
		if len(f) != 7 {
			continue
		}
		expiry, err := strconv.ParseInt(f[4], 10, 64)
		if err != nil {
			continue
		}
		if !hostMatches(f[0], host) {
			continue
		}
		if expiry > 0 && time.Unix(expiry, 0).Before(now) {
			continue
		}
		out = append(out, Cookie{
			Name:     f[5],
			Value:    f[6],
			Domain:   f[0],
			Path:     f[2],
			Expiry:   time.Unix(expiry, 0),
			Secure:   strings.EqualFold(f[3], "TRUE"),
			HttpOnly: httpOnly,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read netscape cookie file: %w", err)
	}
	return out, nil
}

// hostMatches reports whether a cookie stored for domain applies to host:
// an exact match, a dot-prefixed parent domain, or a subdomain of host.
func hostMatches(domain, host string) bool {
	domain = strings.ToLower(domain)
	host = strings.ToLower(host)
	bare := strings.TrimPrefix(domain, ".")
	switch {
	case bare == host:
		return true
	case strings.HasSuffix(host, "."+bare):
		return true
	case strings.HasSuffix(bare, "."+host):
		return true
	}
	return false
}
