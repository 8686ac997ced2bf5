package patreon

import "strings"

// queryParam finds `name=` in an HTTP request line like
// `GET /?code=ABC&state=xyz HTTP/1.1` and returns the value up to the
// next '&' or space
func queryParam(requestLine string, name string) (string, bool) {
	marker := name + "="
	start := -1
	for i := 0; i+len(marker) <= len(requestLine); i++ {
		if !strings.HasPrefix(requestLine[i:], marker) {
			continue
		}
		// must be the start of a parameter, so "xcode=" does not count as "code="
		if i == 0 || requestLine[i-1] == '?' || requestLine[i-1] == '&' {
			start = i + len(marker)
			break
		}
	}
	if start == -1 {
		return "", false
	}

	rest := requestLine[start:]
	if end := strings.IndexAny(rest, "& \r\n"); end != -1 {
		rest = rest[:end]
	}
	return rest, true
}
