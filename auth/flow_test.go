package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/andrebq/hackademy/auth"
	"github.com/andrebq/hackademy/catalog"
	"github.com/andrebq/hackademy/internal/testutil"
)

func acquireFlow(ctx context.Context, t *testing.T) (*auth.Flow, *catalog.Store, func()) {
	store, cleanup := testutil.AcquireCatalog(ctx, t, nil)
	return auth.NewFlow(store, auth.NewSessionStore()), store, cleanup
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	flow, store, cleanup := acquireFlow(ctx, t)
	defer cleanup()

	err := flow.Register(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	user, err := store.UserByUsername(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password must not be stored in plain text")
	}

	res, err := flow.Login(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token == "" || res.UserID != user.ID {
		t.Fatalf("unexpected login result: %+v", res)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := acquireFlow(ctx, t)
	defer cleanup()

	if err := flow.Register(ctx, "ana", "first"); err != nil {
		t.Fatal(err)
	}
	err := flow.Register(ctx, "ana", "second")
	var taken catalog.UsernameTaken
	if !errors.As(err, &taken) {
		t.Fatalf("expecting UsernameTaken, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := acquireFlow(ctx, t)
	defer cleanup()

	if err := flow.Register(ctx, "ana", "s3cret"); err != nil {
		t.Fatal(err)
	}
	_, wrongPass := flow.Login(ctx, "ana", "nope")
	_, noUser := flow.Login(ctx, "bob", "nope")
	if !errors.Is(wrongPass, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password should yield ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noUser, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown username should yield ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatal("the two failures must carry no distinguishable signal")
	}
}

func TestProfileFlow(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := acquireFlow(ctx, t)
	defer cleanup()

	if err := flow.Register(ctx, "ana", "s3cret"); err != nil {
		t.Fatal(err)
	}
	res, err := flow.Login(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest("GET", "/auth/profile", nil)
	req.AddCookie(auth.SessionCookie(res.Token))
	profile, err := flow.Profile(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if profile.RedirectToLogin || profile.Username != "ana" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	anon, _ := http.NewRequest("GET", "/auth/profile", nil)
	profile, err = flow.Profile(ctx, anon)
	if err != nil {
		t.Fatal(err)
	}
	if !profile.RedirectToLogin {
		t.Fatal("anonymous callers must be redirected to login")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := acquireFlow(ctx, t)
	defer cleanup()

	if err := flow.Register(ctx, "ana", "s3cret"); err != nil {
		t.Fatal(err)
	}
	res, err := flow.Login(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest("GET", "/auth/logout", nil)
	req.AddCookie(auth.SessionCookie(res.Token))
	flow.Logout(req)

	if _, ok := flow.ResolveIdentity(req); ok {
		t.Fatal("session must be gone after logout")
	}

	// logout without a cookie is a no-op
	bare, _ := http.NewRequest("GET", "/auth/logout", nil)
	flow.Logout(bare)
}
