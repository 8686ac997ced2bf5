// Package patreon implements the Patreon OAuth login: the user signs in with
// their browser, the redirect is received on a local port and the code is
// exchanged for an access token.
package patreon

import (
	"golang.org/x/oauth2"
)

const (
	AuthURL  = "https://www.patreon.com/oauth2/authorize"
	TokenURL = "https://www.patreon.com/api/oauth2/token"
)

// Scopes that are requested. identity.memberships is needed to see
// which campaigns the user is a patron of.
var Scopes = []string{"identity", "identity.memberships", "campaigns.posts"}

// Endpoint is the Patreon OAuth endpoint. Client id and secret are sent as form values.
var Endpoint = oauth2.Endpoint{
	AuthURL:   AuthURL,
	TokenURL:  TokenURL,
	AuthStyle: oauth2.AuthStyleInParams,
}

const successPage = "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nConnection: close\r\n\r\n" +
	"<html><body style='font-family:sans-serif;background:#111;color:#eee;display:flex;justify-content:center;align-items:center;height:100%'>" +
	"<div><h1>Login Successful</h1><p>You can close this window and return to RLS Installer.</p><script>window.close()</script></div>" +
	"</body></html>"

const noCodePage = "HTTP/1.1 400 Bad Request\r\nConnection: close\r\n\r\nNo code found"
