package claim

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/warpdl/autoclaim/common"
)

const (
	// Header keys
	USER_AGENT_KEY      = "User-Agent"
	ACCEPT_KEY          = "Accept"
	ACCEPT_LANGUAGE_KEY = "Accept-Language"
	CONTENT_TYPE_KEY    = "Content-Type"
	REFERER_KEY         = "Referer"
	COOKIE_KEY          = "Cookie"
)

// Headers is an ordered list of request headers.
type Headers []Header

// Get returns the index of the header with the given key.
// If the header is not found, the second return value is false.
func (h Headers) Get(key string) (index int, have bool) {
	for i, x := range h {
		if http.CanonicalHeaderKey(x.Key) != http.CanonicalHeaderKey(key) {
			continue
		}
		return i, true
	}
	return
}

// Update replaces the header with the given key, adding it if missing.
func (h *Headers) Update(key, value string) {
	if i, ok := h.Get(key); ok {
		(*h)[i] = Header{key, value}
		return
	}
	*h = append(*h, Header{key, value})
}

// Set writes every header into header, replacing existing values.
func (h Headers) Set(header http.Header) {
	for _, x := range h {
		x.Set(header)
	}
}

// Header is a key-value pair.
type Header struct {
	Key   string
	Value string
}

func (h *Header) Set(header http.Header) {
	header.Set(h.Key, h.Value)
}

// DefaultHeaders returns the fixed header set sent with both claim requests.
// An empty cookie omits the Cookie header.
func DefaultHeaders(userAgent, referer, cookie string) Headers {
	h := Headers{
		{ACCEPT_KEY, "*/*"},
		{ACCEPT_LANGUAGE_KEY, common.DefaultAcceptLanguage},
		{CONTENT_TYPE_KEY, "application/json"},
		{USER_AGENT_KEY, userAgent},
		{REFERER_KEY, referer},
	}
	if cookie != "" {
		h = append(h, Header{COOKIE_KEY, cookie})
	}
	return h
}

// ParseHeaderLine parses a "Key: Value" line given on the command line.
func ParseHeaderLine(line string) (Header, error) {
	key, value, ok := strings.Cut(line, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return Header{}, fmt.Errorf("invalid header %q, expected \"Key: Value\"", line)
	}
	return Header{Key: http.CanonicalHeaderKey(key), Value: strings.TrimSpace(value)}, nil
}
