package api

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"place/internal/protocol"
)

var (
	emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")
	ubsRegex   = regexp.MustCompile(`^[a-z0-9.]+@(etud\.)?univ-ubs\.fr$`)
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if err := ValidateLogin(username, password); err != nil {
		return "", err
	}
	return c.postText(ctx, "/api/login", protocol.LoginRequest{Username: username, Password: password}, false)
}

// ValidateLogin checks the login form before any request is made.
func ValidateLogin(username, password string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "Please enter an username."}
	}
	if password == "" {
		return &ValidationError{Field: "password", Message: "Please enter a password."}
	}
	return nil
}

// NormalizeSignup trims the fields the way the form does before validating.
// Usernames are stored NFC so visually equal names compare equal.
func NormalizeSignup(r protocol.SignupRequest) protocol.SignupRequest {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = norm.NFC.String(strings.TrimSpace(r.Username))
	r.Password = strings.TrimSpace(r.Password)
	return r
}

// ValidateSignup mirrors the server's checks so most mistakes never leave
// the client. requireUBS restricts the address to the university domain.
func ValidateSignup(r protocol.SignupRequest, requireUBS bool) error {
	if r.Email == "" || !emailRegex.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address."}
	}
	if requireUBS && !ubsRegex.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid UBS email address."}
	}
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	if n := len(r.Password); n < protocol.PasswordMin {
		return &ValidationError{Field: "password", Message: "Please enter at least 8 characters."}
	} else if n > protocol.PasswordMax {
		return &ValidationError{Field: "password", Message: "Please enter at most 128 characters."}
	}
	return nil
}

// ValidateUsername checks the length in bytes, as the server counts it.
func ValidateUsername(name string) error {
	n := len(name)
	if n < protocol.UsernameMin {
		return &ValidationError{Field: "username", Message: "Please enter at least 3 characters."}
	}
	if n > protocol.UsernameMax {
		return &ValidationError{Field: "username", Message: "Please enter at most 15 characters."}
	}
	return nil
}

// Signup registers an account; the server mails a verification link.
func (c *Client) Signup(ctx context.Context, r protocol.SignupRequest, requireUBS bool) error {
	r = NormalizeSignup(r)
	if err := ValidateSignup(r, requireUBS); err != nil {
		return err
	}
	_, err := c.postText(ctx, "/api/signup", r, false)
	return err
}

// RequiresUBS asks whether signup is limited to UBS addresses.
func (c *Client) RequiresUBS(ctx context.Context) (bool, error) {
	return getJSON[bool](ctx, c, "/api/ubs", false)
}

func (c *Client) Profile(ctx context.Context) (protocol.User, error) {
	return getJSON[protocol.User](ctx, c, "/api/profile/me", true)
}

func (c *Client) EditProfile(ctx context.Context, e protocol.ProfileEdit) error {
	e.Username = norm.NFC.String(strings.TrimSpace(e.Username))
	if err := ValidateUsername(e.Username); err != nil {
		return err
	}
	if e.CurrentPassword == "" {
		return &ValidationError{Field: "current_password", Message: "Please enter your current password."}
	}
	if e.Password != "" {
		if n := len(e.Password); n < protocol.PasswordMin || n > protocol.PasswordMax {
			return &ValidationError{Field: "password", Message: "Password must be 8 to 128 characters."}
		}
	}
	_, err := c.postText(ctx, "/api/profile/edit", e, true)
	return err
}

// Verify follows the link from the verification mail.
func (c *Client) Verify(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return &ValidationError{Field: "code", Message: "Please enter the verification code."}
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/verify/"+url.PathEscape(code), nil, false)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
