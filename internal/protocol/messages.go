package protocol

// ================= C -> S =================

type DrawRequest struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color uint8 `json:"color"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// ProfileEdit leaves Password empty to keep the current one.
type ProfileEdit struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	CurrentPassword string `json:"current_password"`
}

// ================= S -> C =================

// PixelUpdate is both the WebSocket frame and an /api/updates item.
type PixelUpdate struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color uint8 `json:"color"`
}

// User is the public profile shape; Cooldown is the unix second at which
// the next placement is allowed.
type User struct {
	Username string `json:"username"`
	Cooldown int64  `json:"cooldown"`
	Score    uint32 `json:"score"`
	Rank     uint32 `json:"rank"`
	Verified bool   `json:"verified"`
}

type ColorFile struct {
	Colors []string `json:"colors"`
}
