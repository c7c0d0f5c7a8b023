// Package idp obtains identity-provider ID tokens. The interactive browser
// flow is the terminal equivalent of the web app's sign-in popup; FileToken
// exists for scripting and tests.
package idp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// FileToken reads a previously issued ID token from a file.
type FileToken struct {
	Path string
}

// SignIn returns the file contents, trimmed.
func (f FileToken) SignIn(context.Context) (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Loopback opens the provider's sign-in page in the system browser and
// collects the ID token on a localhost callback.
type Loopback struct {
	// SignInURL is the provider page that posts the token back to us.
	SignInURL string
	// Addr is the loopback listen address, e.g. "127.0.0.1:8910".
	Addr string
	Log  *zap.Logger

	// open overrides how the sign-in URL is launched; nil means the
	// system browser.
	open func(url string) error
}

// SignIn runs one interactive sign-in round. It blocks until the callback
// fires or ctx is done.
func (l *Loopback) SignIn(ctx context.Context) (string, error) {
	if l.SignInURL == "" {
		return "", errors.New("no sign-in URL configured")
	}
	state, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", l.Addr, err)
	}

	type result struct {
		token string
		err   error
	}
	ch := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("state") != state.String() {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			ch <- result{err: errors.New("callback state mismatch")}
			return
		}
		tok := r.FormValue("id_token")
		if tok == "" {
			http.Error(w, "missing id_token", http.StatusBadRequest)
			ch <- result{err: errors.New("callback carried no id_token")}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this tab.")
		ch <- result{token: tok}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	redirect := "http://" + ln.Addr().String() + "/callback"
	signIn := l.SignInURL +
		"?state=" + state.String() +
		"&redirect_uri=" + url.QueryEscape(redirect)
	open := l.open
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(signIn); err != nil {
		// headless hosts still get a usable link
		l.Log.Warn("open browser", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Open this URL to sign in:\n  %s\n", signIn)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.token, res.err
	}
}
