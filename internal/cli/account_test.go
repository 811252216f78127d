package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"place/internal/api"
	"place/internal/protocol"
)

func TestSendSignupPostsRequest(t *testing.T) {
	var got protocol.SignupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/signup" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()
	c := api.NewClient(srv.URL, noToken{})

	req := protocol.SignupRequest{Email: "a@b.fr", Username: "jane", Password: "password1"}
	if err := sendSignup(c, req, false); err != nil {
		t.Fatalf("sendSignup: %v", err)
	}
	if got.Username != "jane" {
		t.Fatalf("server saw %+v", got)
	}
}
