package ownhttp

import "net/http"

// AddHeaderTransport sets the User-Agent on every request that does not have one yet
type AddHeaderTransport struct {
	T         http.RoundTripper
	UserAgent string
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if adt.UserAgent == "" || req.Header.Get("User-Agent") != "" {
		return adt.T.RoundTrip(req)
	}
	// RoundTrippers must not modify the request
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", adt.UserAgent)
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (http.DefaultTransport if nil)
func NewAddHeaderTransport(T http.RoundTripper, userAgent string) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T, userAgent}
}
