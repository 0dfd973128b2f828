package main

import (
	"net/http"
	"testing"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/login", loginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatalf("expected session cookie to be set, got %v", cookies)
	}
	if !session.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/login", loginRequest{
		Email:    testAdminEmail,
		Password: "not-the-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/login", loginRequest{
		Email:    "nobody@example.com",
		Password: testAdminPassword,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	srv, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/admin/rates", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/admin/rates", nil, adminCookie(srv))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTamperedSessionValueIsRejected(t *testing.T) {
	srv, handler := newTestServer(t)

	cookie := adminCookie(srv)
	cookie.Value = cookie.Value + "00"

	rec := doJSON(t, handler, http.MethodGet, "/api/admin/rates", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered cookie, got %d", rec.Code)
	}
}

func TestSessionValueRoundTrip(t *testing.T) {
	auth := newAuthService(nil, "round-trip-secret")

	value := auth.createSessionValue("admin@example.com")
	email, ok := auth.verifySessionValue(value)
	if !ok {
		t.Fatal("expected session value to verify")
	}
	if email != "admin@example.com" {
		t.Fatalf("expected email to round-trip, got %q", email)
	}

	other := newAuthService(nil, "different-secret")
	if _, ok := other.verifySessionValue(value); ok {
		t.Fatal("session signed with another secret must not verify")
	}
}
