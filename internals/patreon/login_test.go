package patreon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"golang.org/x/oauth2"
)

// browser plays the part of the user: it follows the auth url and
// lets the provider redirect back with the given query
type browser struct {
	query    func(state string) string
	opened   int32
	response chan string
}

func newBrowser(query func(state string) string) *browser {
	return &browser{query: query, response: make(chan string, 1)}
}

func (b *browser) OpenURL(authURL string) error {
	atomic.AddInt32(&b.opened, 1)
	parsed, err := url.Parse(authURL)
	if err != nil {
		return err
	}
	redirect := parsed.Query().Get("redirect_uri")
	state := parsed.Query().Get("state")

	go func() {
		res, err := http.Get(redirect + "/?" + b.query(state))
		if err != nil {
			b.response <- "error: " + err.Error()
			return
		}
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		b.response <- res.Status + " " + string(body)
	}()
	return nil
}

type failingOpener struct{}

func (failingOpener) OpenURL(string) error { return errors.New("no browser") }

type idleOpener struct{}

func (idleOpener) OpenURL(string) error { return nil }

func tokenServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("could not parse token request: %v", err)
		}
		if r.Form.Get("client_id") != "id" || r.Form.Get("client_secret") != "secret" {
			t.Errorf("client credentials not sent as form values: %v", r.Form)
		}
		if r.Form.Get("code") != "the-code" {
			t.Errorf("code = %q", r.Form.Get("code"))
		}
		if r.Form.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testSession(ts *httptest.Server, opener Opener) (*Session, *cmdlog.Recorder) {
	rec := &cmdlog.Recorder{}
	s := NewSession(LoginConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		ListenAddr:   "127.0.0.1:0",
		Timeout:      5 * time.Second,
	}, opener, rec)
	if ts != nil {
		s.Endpoint = &oauth2.Endpoint{
			AuthURL:   AuthURL,
			TokenURL:  ts.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
		s.HTTPClient = ts.Client()
	}
	return s, rec
}

func withCode(state string) string {
	return "code=the-code&state=" + url.QueryEscape(state)
}

func TestLoginSuccess(t *testing.T) {
	ts := tokenServer(t, http.StatusOK, `{"access_token":"patreon-token","token_type":"Bearer","refresh_token":"refresh","expires_in":3600}`)
	b := newBrowser(withCode)
	s, _ := testSession(ts, b)

	token, err := s.Login(context.Background())
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token.AccessToken != "patreon-token" {
		t.Errorf("AccessToken = %q", token.AccessToken)
	}
	if token.RefreshToken != "refresh" {
		t.Errorf("RefreshToken = %q", token.RefreshToken)
	}
	if s.State() != Done {
		t.Errorf("State() = %s, want done", s.State())
	}

	page := <-b.response
	if !strings.HasPrefix(page, "200") || !strings.Contains(page, "Login Successful") {
		t.Errorf("browser got %q", page)
	}
}

func TestLoginAuthURL(t *testing.T) {
	var got string
	opener := openerFunc(func(u string) error {
		got = u
		return errors.New("stop here")
	})
	s, _ := testSession(nil, opener)
	s.Login(context.Background())

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Scheme+"://"+parsed.Host+parsed.Path != AuthURL {
		t.Errorf("auth url %q does not point to patreon", got)
	}
	q := parsed.Query()
	if q.Get("response_type") != "code" || q.Get("client_id") != "id" {
		t.Errorf("unexpected query %v", q)
	}
	if q.Get("scope") != "identity identity.memberships campaigns.posts" {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if !strings.HasPrefix(q.Get("redirect_uri"), "http://127.0.0.1:") {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
	if q.Get("state") == "" {
		t.Error("state missing")
	}
}

type openerFunc func(string) error

func (f openerFunc) OpenURL(u string) error { return f(u) }

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name        string
		tokenStatus int
		tokenBody   string
		opener      func() Opener
		noConfig    bool
		want        merrors.Kind
	}{
		{
			name:     "missing client config",
			noConfig: true,
			opener:   func() Opener { return newBrowser(withCode) },
			want:     merrors.KindConfig,
		},
		{
			name:   "browser cannot be opened",
			opener: func() Opener { return failingOpener{} },
			want:   merrors.KindIO,
		},
		{
			name: "redirect without code",
			opener: func() Opener {
				return newBrowser(func(string) string { return "error=access_denied" })
			},
			want: merrors.KindProtocol,
		},
		{
			name: "state mismatch",
			opener: func() Opener {
				return newBrowser(func(string) string { return "code=the-code&state=forged" })
			},
			want: merrors.KindProtocol,
		},
		{
			name:        "token endpoint rejects code",
			tokenStatus: http.StatusUnauthorized,
			tokenBody:   `{"error":"invalid_grant"}`,
			opener:      func() Opener { return newBrowser(withCode) },
			want:        merrors.KindAuth,
		},
		{
			name:        "no access token in response",
			tokenStatus: http.StatusOK,
			tokenBody:   `{"token_type":"Bearer"}`,
			opener:      func() Opener { return newBrowser(withCode) },
			want:        merrors.KindAuth,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.tokenStatus
			if status == 0 {
				status = http.StatusOK
			}
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				io.WriteString(w, tt.tokenBody)
			}))
			defer ts.Close()

			opener := tt.opener()
			s, _ := testSession(ts, opener)
			if tt.noConfig {
				s.Config.ClientSecret = ""
			}

			_, err := s.Login(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if kind := merrors.KindOf(err); kind != tt.want {
				t.Errorf("kind = %s, want %s (%v)", kind, tt.want, err)
			}
			if s.State() != Failed {
				t.Errorf("State() = %s, want failed", s.State())
			}
			if b, ok := opener.(*browser); ok && tt.noConfig && atomic.LoadInt32(&b.opened) != 0 {
				t.Error("browser was opened although the config is missing")
			}
		})
	}
}

func TestLoginNoCodeAnswers400(t *testing.T) {
	b := newBrowser(func(string) string { return "error=access_denied" })
	s, _ := testSession(nil, b)

	if _, err := s.Login(context.Background()); !merrors.Is(err, merrors.KindProtocol) {
		t.Fatalf("err = %v, want a protocol error", err)
	}
	page := <-b.response
	if !strings.HasPrefix(page, "400") || !strings.Contains(page, "No code found") {
		t.Errorf("browser got %q", page)
	}
}

func TestLoginTimeout(t *testing.T) {
	s, _ := testSession(nil, idleOpener{})
	s.Config.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := s.Login(context.Background())
	if !merrors.Is(err, merrors.KindTimeout) {
		t.Fatalf("err = %v, want a timeout", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("login did not give up in time")
	}
}

func TestLoginCanceled(t *testing.T) {
	s, _ := testSession(nil, idleOpener{})
	s.Config.Timeout = 0

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := s.Login(ctx)
	if !merrors.Is(err, merrors.KindTimeout) {
		t.Fatalf("err = %v, want a timeout", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err should wrap context.Canceled, got %v", err)
	}
}

func TestLoginPortInUse(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	s, _ := testSession(nil, idleOpener{})
	s.Config.ListenAddr = ts.Listener.Addr().String()

	_, err := s.Login(context.Background())
	if !merrors.Is(err, merrors.KindNetwork) {
		t.Fatalf("err = %v, want a network error", err)
	}
}
