// ABOUTME: Tests for the auth endpoint wrappers
// ABOUTME: Verify's three-way outcome is the load-bearing part

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginDecodesTokenAndUser(t *testing.T) {
	var gotBody Credentials
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "tok-1",
			User:        UserSummary{ID: 7, Username: "azl"},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Login(context.Background(), Credentials{Username: "azl", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if gotBody.Username != "azl" || gotBody.Password != "hunter22" {
		t.Errorf("unexpected request body %+v", gotBody)
	}
	if resp.AccessToken != "tok-1" || resp.User.Username != "azl" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRegisterDecodesTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "tok-2",
			User:        UserSummary{Username: "newbie"},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Register(context.Background(), Registration{
		Username: "newbie", Email: "n@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.AccessToken != "tok-2" {
		t.Errorf("unexpected token %q", resp.AccessToken)
	}
}

func TestVerifyOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantValid bool
		wantErr   bool
	}{
		{"valid", http.StatusOK, true, false},
		{"rejected 401", http.StatusUnauthorized, false, false},
		{"rejected 403", http.StatusForbidden, false, false},
		{"server error is indeterminate", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := New(server.URL)
			valid, err := client.Verify(context.Background())
			if valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", valid, tt.wantValid)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyNetworkFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(url)
	valid, err := client.Verify(context.Background())
	if valid {
		t.Error("unreachable backend cannot confirm a session")
	}
	if err == nil {
		t.Error("network failure must surface as an error, not a rejection")
	}
}
