package patreon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dchest/uniuri"
	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"golang.org/x/oauth2"
)

// State is the step a login is in
type State int

const (
	Idle State = iota
	AwaitingRedirect
	ExchangingToken
	Done
	Failed
)

func (s State) String() string {
	return [...]string{"idle", "awaiting redirect", "exchanging token", "done", "failed"}[s]
}

// Opener opens an url in the user's browser
type Opener interface {
	OpenURL(url string) error
}

// LoginConfig describes the oauth app and where the redirect is received
type LoginConfig struct {
	ClientID     string
	ClientSecret string
	// ListenAddr is the local address of the one-shot listener
	ListenAddr string
	// RedirectURL has to point to ListenAddr. If empty it is derived from the listener.
	RedirectURL string
	// Timeout bounds the wait for the browser redirect. 0 waits until ctx is done.
	Timeout time.Duration
}

// Session is a single login attempt
type Session struct {
	Config LoginConfig
	Opener Opener
	// HTTPClient is used for the token exchange. Optional.
	HTTPClient *http.Client
	Logger     cmdlog.Logger
	// Endpoint defaults to the Patreon endpoint
	Endpoint *oauth2.Endpoint

	mu    sync.Mutex
	state State
}

// NewSession returns a Session in the Idle state
func NewSession(cfg LoginConfig, opener Opener, logger cmdlog.Logger) *Session {
	return &Session{Config: cfg, Opener: opener, Logger: cmdlog.OrDiscard(logger)}
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	cmdlog.OrDiscard(s.Logger).Debug("patreon login", "state", state)
}

// Login runs the whole flow and returns the token. It blocks until the browser
// redirect arrives, the timeout passes or ctx is canceled.
func (s *Session) Login(ctx context.Context) (*oauth2.Token, error) {
	token, err := s.login(ctx)
	if err != nil {
		s.setState(Failed)
		return nil, err
	}
	s.setState(Done)
	return token, nil
}

func (s *Session) login(ctx context.Context) (*oauth2.Token, error) {
	const op = "patreon login"
	if s.Config.ClientID == "" || s.Config.ClientSecret == "" {
		return nil, &merrors.Error{
			Kind: merrors.KindConfig,
			Op:   op,
			Err:  "Patreon login is not configured for this build.",
			Help: "Set PATREON_CLIENT_ID and PATREON_CLIENT_SECRET.",
		}
	}

	listener, err := net.Listen("tcp", s.Config.ListenAddr)
	if err != nil {
		return nil, merrors.Wrapf(merrors.KindNetwork, op, err, "could not listen on %s: %s", s.Config.ListenAddr, err)
	}
	defer listener.Close()

	redirectURL := s.Config.RedirectURL
	if redirectURL == "" {
		redirectURL = "http://" + listener.Addr().String()
	}

	endpoint := Endpoint
	if s.Endpoint != nil {
		endpoint = *s.Endpoint
	}
	conf := &oauth2.Config{
		ClientID:     s.Config.ClientID,
		ClientSecret: s.Config.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
	}

	state := uniuri.New()
	authURL := conf.AuthCodeURL(state)

	if s.Opener == nil {
		return nil, merrors.New(merrors.KindIO, op, "no browser opener available")
	}
	if err := s.Opener.OpenURL(authURL); err != nil {
		return nil, merrors.Wrapf(merrors.KindIO, op, err, "could not open browser: %s", err)
	}

	s.setState(AwaitingRedirect)
	code, err := s.awaitCode(ctx, listener, state)
	if err != nil {
		return nil, err
	}

	s.setState(ExchangingToken)
	if s.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.HTTPClient)
	}
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	return token, nil
}

// awaitCode accepts exactly one connection and parses the code out of its request line
func (s *Session) awaitCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	const op = "patreon login"
	conn, err := acceptOne(ctx, listener, s.Config.Timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	// the browser sends the request right away
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	requestLine, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && requestLine == "" {
		return "", merrors.Wrapf(merrors.KindProtocol, op, err, "could not read redirect: %s", err)
	}

	code, ok := queryParam(requestLine, "code")
	if !ok || code == "" {
		s.respond(conn, noCodePage)
		return "", merrors.New(merrors.KindProtocol, op, "No code found in redirect")
	}
	if gotState, ok := queryParam(requestLine, "state"); ok && gotState != state {
		s.respond(conn, noCodePage)
		return "", merrors.New(merrors.KindProtocol, op, "state mismatch in redirect, try logging in again")
	}

	s.respond(conn, successPage)
	return code, nil
}

// respond writes to the browser. The browser might be gone already, that is fine.
func (s *Session) respond(conn net.Conn, page string) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write([]byte(page)); err != nil {
		cmdlog.OrDiscard(s.Logger).Warn("could not answer the browser", "err", err)
	}
}

// acceptOne waits for a single connection until timeout or ctx is done
func acceptOne(ctx context.Context, listener net.Listener, timeout time.Duration) (net.Conn, error) {
	const op = "patreon login"
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type accepted struct {
		conn net.Conn
		err  error
	}
	result := make(chan accepted, 1)
	go func() {
		conn, err := listener.Accept()
		result <- accepted{conn, err}
	}()

	select {
	case r := <-result:
		if r.err != nil {
			return nil, merrors.Wrap(merrors.KindNetwork, op, r.err)
		}
		return r.conn, nil
	case <-ctx.Done():
		// unblocks Accept, the deferred Close in login is a no-op then
		listener.Close()
		if r := <-result; r.conn != nil {
			r.conn.Close()
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, merrors.New(merrors.KindTimeout, op, "no login response from the browser within %s", timeout)
		}
		return nil, merrors.Wrapf(merrors.KindTimeout, op, ctx.Err(), "login canceled")
	}
}

func classifyExchangeError(err error) error {
	const op = "patreon login"
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return merrors.Wrapf(merrors.KindAuth, op, err, "Token exchange failed: %s", strings.TrimSpace(string(retrieveErr.Body)))
	}
	if strings.Contains(err.Error(), "missing access_token") {
		return merrors.Wrapf(merrors.KindAuth, op, err, "No access_token in response")
	}
	return merrors.Wrapf(merrors.KindNetwork, op, err, "Token exchange failed: %s", err)
}

// String is used in debug logs
func (c LoginConfig) String() string {
	return fmt.Sprintf("listen=%s redirect=%s timeout=%s", c.ListenAddr, c.RedirectURL, c.Timeout)
}
