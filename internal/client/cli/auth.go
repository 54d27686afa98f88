package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authservice/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials(prompt string) (string, []byte, error) {
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}

	return email, password, nil
}

// Register prompts for an email and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials("Enter email")
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.api.Signup(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and keeps the returned tokens in memory.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials("Enter email")
	if err != nil {
		return err
	}
	defer clear(password)

	tokens, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.tokens = tokens
	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the session. Tokens stay valid server-side until they expire.
func (a *App) Logout(ctx context.Context) error {
	a.tokens = nil
	a.email = ""
	return nil
}

func (a *App) Me(ctx context.Context) error {
	var profile *client.Profile
	err := a.withAccessToken(ctx, func(token string) error {
		var err error
		profile, err = a.api.Me(ctx, token)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "email:       %s\n", profile.Email)
	fmt.Fprintf(a.out, "last login:  %s\n", formatTime(profile.LastLoginDate))
	fmt.Fprintf(a.out, "last active: %s\n", formatTime(profile.LastActiveDate))
	return nil
}

// ChangePassword asks for the current and the new password.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	fmt.Fprintln(a.out, "Current password")
	oldPassword, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	fmt.Fprintln(a.out, "New password")
	newPassword, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(newPassword)

	err = a.withAccessToken(ctx, func(token string) error {
		return a.api.ChangePassword(ctx, token, string(oldPassword), string(newPassword))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Refresh swaps the access token using the stored refresh token.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	tokens, err := a.api.Refresh(ctx, a.tokens.RefreshToken)
	if err != nil {
		return err
	}

	a.tokens = tokens
	return nil
}

var errNotLoggedIn = errors.New("not logged in")

// withAccessToken runs fn and, on a 401, refreshes once and retries.
func (a *App) withAccessToken(ctx context.Context, fn func(token string) error) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	err := fn(a.tokens.AccessToken)
	if !client.IsUnauthorized(err) {
		return err
	}

	if err := a.Refresh(ctx); err != nil {
		if client.IsUnauthorized(err) {
			a.tokens = nil
			return fmt.Errorf("session expired, please log in again: %w", err)
		}
		return err
	}

	return fn(a.tokens.AccessToken)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.RFC1123)
}
