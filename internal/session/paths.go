package session

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "default"
	}
	return s
}

// ProfileID picks a per-binary profile:
// 1) the explicit name (flag or PLACE_PROFILE env)
// 2) <exeBase>-<hash8 of full exe path>
func ProfileID(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return sanitize(p)
	}
	if p := strings.TrimSpace(os.Getenv("PLACE_PROFILE")); p != "" {
		return sanitize(p)
	}
	exe, _ := os.Executable()
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	sum := sha1.Sum([]byte(exe))
	return sanitize(base) + "-" + hex.EncodeToString(sum[:])[:8]
}

// DefaultDir = OS config dir / Place / profile
//
//	Windows: %APPDATA%\Place\<profile>\
//	macOS:   ~/Library/Application Support/Place/<profile>/
//	Linux:   ~/.config/Place/<profile>/
func DefaultDir(profile string) string {
	root, _ := os.UserConfigDir()
	if root == "" {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "Place", ProfileID(profile))
}
