package protocol

const (
	GameName    = "Place"
	GameVersion = "1.4.0"

	ScreenW = 1280
	ScreenH = 800

	// Client-side view limits
	MinZoom  = 0.75
	MaxZoom  = 128.0
	ZoomStep = 1.1

	// Signup field bounds, mirrored from the server checks
	UsernameMin = 3
	UsernameMax = 15
	PasswordMin = 8
	PasswordMax = 128

	LeaderboardSize = 10
)
