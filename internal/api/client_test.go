package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"place/internal/protocol"
)

type staticToken string

func (s staticToken) Token() (string, error) {
	if s == "" {
		return "", errors.New("no token")
	}
	return string(s), nil
}

func newTestClient(t *testing.T, h http.Handler, tok string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", staticToken(tok))
}

func TestDrawSendsRawTokenAndReturnsCooldown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/draw", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		var d protocol.DrawRequest
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if d.X != 4 || d.Y != 9 || d.Color != 27 {
			t.Errorf("body = %+v", d)
		}
		_, _ = io.WriteString(w, "60")
	})
	c := newTestClient(t, mux, "tok-123")

	cd, err := c.Draw(context.Background(), protocol.DrawRequest{X: 4, Y: 9, Color: 27})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if cd != 60 {
		t.Fatalf("cooldown = %d", cd)
	}
}

func TestDrawWithoutTokenFailsLocally(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }), "")
	_, err := c.Draw(context.Background(), protocol.DrawRequest{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if called {
		t.Fatalf("request must not be sent without a token")
	}
}

func TestStatusErrorMatchesSentinels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/draw", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cooldown not over : 12s", http.StatusBadRequest)
	})
	mux.HandleFunc("/api/profile/me", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	})
	c := newTestClient(t, mux, "t")

	_, err := c.Draw(context.Background(), protocol.DrawRequest{})
	if !errors.Is(err, ErrCooldown) {
		t.Fatalf("want ErrCooldown, got %v", err)
	}
	if Message(err) != "cooldown not over : 12s" {
		t.Fatalf("Message = %q", Message(err))
	}

	_, err = c.Profile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Fatalf("want StatusError 401, got %v", err)
	}
}

func TestSizeSnapshotAndUpdates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 2, color.RGBA{255, 69, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/size", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[2,3]")
	})
	mux.HandleFunc("/api/png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/api/updates", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"x":0,"y":1,"color":5}]`)
	})
	c := newTestClient(t, mux, "")
	ctx := context.Background()

	w, h, err := c.Size(ctx)
	if err != nil || w != 2 || h != 3 {
		t.Fatalf("Size = %d,%d,%v", w, h, err)
	}
	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if r, g, _, _ := snap.At(1, 2).RGBA(); r>>8 != 255 || g>>8 != 69 {
		t.Fatalf("snapshot pixel mismatch")
	}
	ups, err := c.Updates(ctx)
	if err != nil || len(ups) != 1 || ups[0] != (protocol.PixelUpdate{X: 0, Y: 1, Color: 5}) {
		t.Fatalf("Updates = %+v, %v", ups, err)
	}
}

func TestSizeRejectsEmptyCanvas(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[0,10]")
	}), "")
	if _, _, err := c.Size(context.Background()); err == nil {
		t.Fatalf("want error for zero width")
	}
}

func TestLoginReturnsPlainTextToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req protocol.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "ana" || req.Password != "hunter22" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, "eyJ.token.sig\n")
	})
	c := newTestClient(t, mux, "")

	tok, err := c.Login(context.Background(), "ana", "hunter22")
	if err != nil || tok != "eyJ.token.sig" {
		t.Fatalf("Login = %q, %v", tok, err)
	}
	if _, err := c.Login(context.Background(), "ana", "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if _, err := c.Login(context.Background(), "", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	ok := protocol.SignupRequest{Email: "jane.doe@etud.univ-ubs.fr", Username: "jane", Password: "password1"}
	cases := []struct {
		name  string
		req   protocol.SignupRequest
		ubs   bool
		field string
	}{
		{"valid", ok, true, ""},
		{"bad email", protocol.SignupRequest{Email: "nope", Username: "jane", Password: "password1"}, false, "email"},
		{"not ubs", protocol.SignupRequest{Email: "jane@gmail.com", Username: "jane", Password: "password1"}, true, "email"},
		{"not ubs allowed", protocol.SignupRequest{Email: "jane@gmail.com", Username: "jane", Password: "password1"}, false, ""},
		{"short name", protocol.SignupRequest{Email: "a@b.fr", Username: "jo", Password: "password1"}, false, "username"},
		{"long name", protocol.SignupRequest{Email: "a@b.fr", Username: "abcdefghijklmnop", Password: "password1"}, false, "username"},
		{"multibyte name", protocol.SignupRequest{Email: "a@b.fr", Username: "\u00e9l\u00e9a", Password: "password1"}, false, ""},
		{"multibyte name too long", protocol.SignupRequest{Email: "a@b.fr", Username: "\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9", Password: "password1"}, false, "username"},
		{"short pass", protocol.SignupRequest{Email: "a@b.fr", Username: "jane", Password: "short"}, false, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSignup(NormalizeSignup(tc.req), tc.ubs)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("want %s error, got %v", tc.field, err)
			}
		})
	}
}

func TestSignupPostsTrimmedFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/signup", func(w http.ResponseWriter, r *http.Request) {
		var req protocol.SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@b.fr" || req.Username != "jane" {
			t.Errorf("fields not trimmed: %+v", req)
		}
		_, _ = io.WriteString(w, "ok")
	})
	c := newTestClient(t, mux, "")
	err := c.Signup(context.Background(), protocol.SignupRequest{Email: " a@b.fr ", Username: " jane ", Password: "password1"}, false)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
}

func TestNormalizeSignupComposesUsername(t *testing.T) {
	// "e" + combining acute accent
	r := NormalizeSignup(protocol.SignupRequest{Username: " Le\u0301a "})
	if r.Username != "L\u00e9a" {
		t.Fatalf("Username = %q, want NFC form", r.Username)
	}
}

func TestLeaderboardNormalizesRanks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[["ana", 9], ["bo", 4]]`)
	}), "")
	lb, err := c.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if lb[1].Rank != 2 || lb[1].Name != "bo" {
		t.Fatalf("board = %+v", lb)
	}
}

func TestEditProfileValidation(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", staticToken("t"))
	err := c.EditProfile(context.Background(), protocol.ProfileEdit{Username: "ana"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "current_password" {
		t.Fatalf("want current_password error, got %v", err)
	}
	err = c.EditProfile(context.Background(), protocol.ProfileEdit{Username: "ana", Password: "short", CurrentPassword: "x"})
	if !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("want password error, got %v", err)
	}
	// 8 characters, 16 bytes
	err = c.EditProfile(context.Background(), protocol.ProfileEdit{Username: "\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9\u00e9", CurrentPassword: "x"})
	if !errors.As(err, &ve) || ve.Field != "username" {
		t.Fatalf("want username error, got %v", err)
	}
}

func TestPixelOwnerAndColors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/username/3/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ana")
	})
	mux.HandleFunc("/misc/colors.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"colors":["#000000","#ffffff"]}`)
	})
	c := newTestClient(t, mux, "")
	name, err := c.PixelOwner(context.Background(), 3, 7)
	if err != nil || name != "ana" {
		t.Fatalf("PixelOwner = %q, %v", name, err)
	}
	cols, err := c.Colors(context.Background())
	if err != nil || len(cols) != 2 {
		t.Fatalf("Colors = %v, %v", cols, err)
	}
}
