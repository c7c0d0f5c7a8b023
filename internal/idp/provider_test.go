package idp

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	_, err := FileToken{Path: path}.SignIn(context.Background())
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("  id-tok\n"), 0o600))
	tok, err := FileToken{Path: path}.SignIn(context.Background())
	require.NoError(t, err)
	require.Equal(t, "id-tok", tok)

	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))
	_, err = FileToken{Path: path}.SignIn(context.Background())
	require.Error(t, err)
}

// callbackFor pulls state and redirect_uri out of the composed sign-in URL.
func callbackFor(t *testing.T, signIn string) (redirect, state string) {
	t.Helper()
	u, err := url.Parse(signIn)
	require.NoError(t, err)
	q := u.Query()
	require.NotEmpty(t, q.Get("state"))
	require.True(t, strings.HasPrefix(q.Get("redirect_uri"), "http://127.0.0.1:"))
	return q.Get("redirect_uri"), q.Get("state")
}

func TestLoopback_RoundTrip(t *testing.T) {
	opened := make(chan string, 1)
	l := &Loopback{
		SignInURL: "https://idp.invalid/signin",
		Addr:      "127.0.0.1:0",
		Log:       zap.NewNop(),
		open:      func(u string) error { opened <- u; return nil },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type out struct {
		tok string
		err error
	}
	done := make(chan out, 1)
	go func() {
		tok, err := l.SignIn(ctx)
		done <- out{tok, err}
	}()

	redirect, state := callbackFor(t, <-opened)
	resp, err := http.Get(redirect + "?state=" + state + "&id_token=tok-123")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "tok-123", res.tok)
}

func TestLoopback_StateMismatchRejected(t *testing.T) {
	opened := make(chan string, 1)
	l := &Loopback{
		SignInURL: "https://idp.invalid/signin",
		Addr:      "127.0.0.1:0",
		Log:       zap.NewNop(),
		open:      func(u string) error { opened <- u; return nil },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := l.SignIn(ctx)
		done <- err
	}()

	redirect, _ := callbackFor(t, <-opened)
	resp, err := http.Get(redirect + "?state=wrong&id_token=tok")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Error(t, <-done)
}

func TestLoopback_CanceledContext(t *testing.T) {
	l := &Loopback{
		SignInURL: "https://idp.invalid/signin",
		Addr:      "127.0.0.1:0",
		Log:       zap.NewNop(),
		open:      func(string) error { return nil },
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.SignIn(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoopback_NoURLConfigured(t *testing.T) {
	l := &Loopback{Log: zap.NewNop()}
	_, err := l.SignIn(context.Background())
	require.Error(t, err)
}
