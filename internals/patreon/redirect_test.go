package patreon

import "testing"

func TestQueryParam(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		param  string
		want   string
		wantOk bool
	}{
		{"only code", "GET /?code=ABC HTTP/1.1\r\n", "code", "ABC", true},
		{"code then state", "GET /?code=ABC&state=xyz HTTP/1.1\r\n", "code", "ABC", true},
		{"state after code", "GET /?code=ABC&state=xyz HTTP/1.1\r\n", "state", "xyz", true},
		{"code not first", "GET /?scope=identity&code=DEF HTTP/1.1", "code", "DEF", true},
		{"no request line suffix", "GET /?code=GHI", "code", "GHI", true},
		{"empty value", "GET /?code=&state=1 HTTP/1.1", "code", "", true},
		{"missing", "GET /?error=access_denied HTTP/1.1", "code", "", false},
		{"other param ending in code", "GET /?xcode=nope HTTP/1.1", "code", "", false},
		{"empty line", "", "code", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := queryParam(tt.line, tt.param)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("queryParam(%q, %q) = %q, %v; want %q, %v", tt.line, tt.param, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
