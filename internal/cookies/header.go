package cookies

import "strings"

// ParseHeader splits a raw "name=value; name2=value2" cookie string.
// Items without '=' are ignored, names and values are trimmed, and a value
// may itself contain '='. Order is preserved.
func ParseHeader(raw string) []Cookie {
	var out []Cookie
	for _, item := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return out
}

// BuildHeader renders cookies as a Cookie header value: "n1=v1; n2=v2".
// Later duplicates of a name replace earlier ones in place.
func BuildHeader(cookies []Cookie) string {
	if len(cookies) == 0 {
		return ""
	}
	index := make(map[string]int, len(cookies))
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		kv := c.Name + "=" + c.Value
		if i, ok := index[c.Name]; ok {
			parts[i] = kv
			continue
		}
		index[c.Name] = len(parts)
		parts = append(parts, kv)
	}
	return strings.Join(parts, "; ")
}

// Names returns the cookie names, safe for logging.
func Names(cookies []Cookie) []string {
	names := make([]string, len(cookies))
	for i, c := range cookies {
		names[i] = c.Name
	}
	return names
}
