package ownhttp

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent is a desktop browser user agent. Some mod hosts answer 403 to anything else.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
// and the given request timeout
func New(userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewAddHeaderTransport(nil, userAgent),
		Timeout:   timeout,
	}
}

// NewThrottled is like New but allows at most perSecond requests per second.
// A perSecond <= 0 disables throttling.
func NewThrottled(userAgent string, timeout time.Duration, perSecond float64) *http.Client {
	client := New(userAgent, timeout)
	if perSecond <= 0 {
		return client
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	client.Transport = NewThrottleTransport(client.Transport, limiter)
	return client
}
