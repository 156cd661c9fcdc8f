package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/andrebq/hackademy/catalog"
	"github.com/google/uuid"
)

type (
	// UserDirectory is the slice of the catalog the auth flow cares about.
	UserDirectory interface {
		UserByUsername(ctx context.Context, username string) (catalog.User, error)
		UserByID(ctx context.Context, id string) (catalog.User, error)
		InsertUser(ctx context.Context, u catalog.User) error
	}

	// Flow evaluates each request independently against the current user
	// directory and session state.
	Flow struct {
		users    UserDirectory
		sessions *SessionStore
	}

	LoginResult struct {
		Token  string
		UserID string
	}

	ProfileResult struct {
		Username        string
		RedirectToLogin bool
	}

	// CredentialError marks a failure of the hashing primitive itself,
	// fatal for the request that hit it.
	CredentialError struct {
		Cause error
	}
)

// SessionCookieName is the fixed cookie key carrying the session token.
const SessionCookieName = "hackademy_session_id"

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

func (c CredentialError) Error() string {
	return fmt.Sprintf("unable to process credentials, cause %v", c.Cause)
}

func (c CredentialError) Unwrap() error { return c.Cause }

func NewFlow(users UserDirectory, sessions *SessionStore) *Flow {
	return &Flow{users: users, sessions: sessions}
}

// Register creates a new user record. The username pre-check is only a
// fast path, the unique constraint behind InsertUser is what actually
// guarantees uniqueness under concurrent registrations. Registration does
// not log the user in, they must go through Login afterwards.
func (f *Flow) Register(ctx context.Context, username, password string) error {
	_, err := f.users.UserByUsername(ctx, username)
	if err == nil {
		return catalog.UsernameTaken{Username: username}
	}
	var notFound catalog.UserNotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("unable to check username %v, cause %w", username, err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return CredentialError{Cause: err}
	}
	return f.users.InsertUser(ctx, catalog.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	})
}

// Login authenticates the pair and issues a session token for cookie
// transmission.
func (f *Flow) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := f.users.UserByUsername(ctx, username)
	var notFound catalog.UserNotFound
	if errors.As(err, &notFound) {
		return LoginResult{}, ErrInvalidCredentials
	} else if err != nil {
		return LoginResult{}, fmt.Errorf("unable to load user %v, cause %w", username, err)
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := f.sessions.Create(user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, UserID: user.ID}, nil
}

// ResolveIdentity maps the request cookie to a user id. A missing cookie
// or an unknown token both mean anonymous, never an error.
func (f *Flow) ResolveIdentity(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	return f.sessions.Resolve(cookie.Value)
}

// Logout revokes the session behind the request cookie, if any. The caller
// clears the cookie regardless of whether a session existed.
func (f *Flow) Logout(r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return
	}
	f.sessions.Revoke(cookie.Value)
}

// Profile resolves the caller and loads their user record. Anonymous
// callers, and sessions whose user vanished from the directory, both get
// a redirect-to-login result instead of an error.
func (f *Flow) Profile(ctx context.Context, r *http.Request) (ProfileResult, error) {
	userID, ok := f.ResolveIdentity(r)
	if !ok {
		return ProfileResult{RedirectToLogin: true}, nil
	}
	user, err := f.users.UserByID(ctx, userID)
	var notFound catalog.UserNotFound
	if errors.As(err, &notFound) {
		return ProfileResult{RedirectToLogin: true}, nil
	} else if err != nil {
		return ProfileResult{}, fmt.Errorf("unable to load profile of %v, cause %w", userID, err)
	}
	return ProfileResult{Username: user.Username}, nil
}

// SessionCookie builds the HTTP-only cookie transmitting the token.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	}
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
}
