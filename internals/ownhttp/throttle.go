package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// returns early if the request context is canceled while waiting
	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return tt.T.RoundTrip(req)
}

func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}
