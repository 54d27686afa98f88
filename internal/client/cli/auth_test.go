package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/authservice/internal/client/client"
	"github.com/dmitrijs2005/authservice/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	pingErr    error
	signupErr  error
	loginOut   *client.Tokens
	refreshOut *client.Tokens
	refreshErr error

	validAccess string
	calls       []string
	oldPassword string
	newPassword string
}

var errUnauthorized = &client.APIError{Status: http.StatusUnauthorized, Message: "Unauthenticated"}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeAPI) Signup(ctx context.Context, email, password string) error {
	f.calls = append(f.calls, "signup:"+email+":"+password)
	return f.signupErr
}
func (f *fakeAPI) Login(ctx context.Context, email, password string) (*client.Tokens, error) {
	f.calls = append(f.calls, "login:"+email)
	return f.loginOut, nil
}
func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*client.Tokens, error) {
	f.calls = append(f.calls, "refresh:"+refreshToken)
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.validAccess = f.refreshOut.AccessToken
	return f.refreshOut, nil
}
func (f *fakeAPI) Me(ctx context.Context, accessToken string) (*client.Profile, error) {
	f.calls = append(f.calls, "me:"+accessToken)
	if accessToken != f.validAccess {
		return nil, errUnauthorized
	}
	return &client.Profile{Email: "alice@example.com"}, nil
}
func (f *fakeAPI) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	f.calls = append(f.calls, "passwd:"+accessToken)
	f.oldPassword, f.newPassword = oldPassword, newPassword
	return nil
}

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(w io.Writer) ([]byte, error) {
		p := passwords[i%len(passwords)]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := &config.Config{OnlineCheckInterval: time.Hour}
	return newApp(cfg, api, strings.NewReader(input), &out), &out
}

func TestRegister(t *testing.T) {
	stubPasswords(t, "password123")
	api := &fakeAPI{}
	a, out := newTestApp(api, "alice@example.com\n")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, []string{"signup:alice@example.com:password123"}, api.calls)
	assert.Contains(t, out.String(), "Success!")
	assert.False(t, a.isLoggedIn())
}

func TestLoginAndMe(t *testing.T) {
	stubPasswords(t, "password123")
	api := &fakeAPI{
		loginOut:    &client.Tokens{AccessToken: "a1", RefreshToken: "r1"},
		validAccess: "a1",
	}
	a, out := newTestApp(api, "alice@example.com\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.status(), "alice@example.com")

	require.NoError(t, a.Me(ctx))
	assert.Contains(t, out.String(), "alice@example.com")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.ErrorIs(t, a.Me(ctx), errNotLoggedIn)
}

func TestMe_RefreshesExpiredAccessToken(t *testing.T) {
	api := &fakeAPI{
		refreshOut:  &client.Tokens{AccessToken: "a2", RefreshToken: "r1"},
		validAccess: "a2",
	}
	a, _ := newTestApp(api, "")
	a.tokens = &client.Tokens{AccessToken: "a1", RefreshToken: "r1"}

	require.NoError(t, a.Me(context.Background()))
	assert.Equal(t, []string{"me:a1", "refresh:r1", "me:a2"}, api.calls)
	assert.Equal(t, "a2", a.tokens.AccessToken)
}

func TestMe_RefreshRejectedEndsSession(t *testing.T) {
	api := &fakeAPI{refreshErr: errUnauthorized}
	a, _ := newTestApp(api, "")
	a.tokens = &client.Tokens{AccessToken: "a1", RefreshToken: "r1"}

	err := a.Me(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	assert.False(t, a.isLoggedIn())
}

func TestChangePassword(t *testing.T) {
	stubPasswords(t, "old-password", "new-password")
	api := &fakeAPI{}
	a, out := newTestApp(api, "")
	a.tokens = &client.Tokens{AccessToken: "a1", RefreshToken: "r1"}

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Equal(t, "old-password", api.oldPassword)
	assert.Equal(t, "new-password", api.newPassword)
	assert.Contains(t, out.String(), "Password changed")
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	api := &fakeAPI{pingErr: client.ErrUnavailable}
	a, _ := newTestApp(api, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.getMode() == ModeOffline }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func TestReadCredentials_UsesReader(t *testing.T) {
	stubPasswords(t, "pw")
	a, _ := newTestApp(&fakeAPI{}, "bob@example.com\nrest")
	a.reader = bufio.NewReader(strings.NewReader("bob@example.com\nrest"))

	email, pw, err := a.readCredentials("Enter email")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
	assert.Equal(t, "pw", string(pw))
}
