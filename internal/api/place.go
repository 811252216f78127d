package api

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"

	"place/internal/protocol"
)

// Size returns the canvas width and height.
func (c *Client) Size(ctx context.Context) (int, int, error) {
	wh, err := getJSON[[2]int](ctx, c, "/api/size", false)
	if err != nil {
		return 0, 0, err
	}
	if wh[0] <= 0 || wh[1] <= 0 {
		return 0, 0, fmt.Errorf("bad canvas size %dx%d", wh[0], wh[1])
	}
	return wh[0], wh[1], nil
}

// Snapshot fetches the periodically rendered PNG of the canvas.
func (c *Client) Snapshot(ctx context.Context) (image.Image, error) {
	b, err := c.getRaw(ctx, "/api/png")
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}

// Updates lists the pixels placed since the last snapshot was rendered.
func (c *Client) Updates(ctx context.Context) ([]protocol.PixelUpdate, error) {
	return getJSON[[]protocol.PixelUpdate](ctx, c, "/api/updates", false)
}

// Pixels fetches the raw palette-index dump served by older servers, one
// byte per pixel, column-major.
func (c *Client) Pixels(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/api/pixels")
}

// Draw places one pixel and returns the cooldown in seconds.
func (c *Client) Draw(ctx context.Context, d protocol.DrawRequest) (int, error) {
	return postJSON[protocol.DrawRequest, int](ctx, c, "/api/draw", d, true)
}

// PixelOwner returns the name of whoever last placed the pixel.
func (c *Client) PixelOwner(ctx context.Context, x, y int) (string, error) {
	b, err := c.getRaw(ctx, fmt.Sprintf("/api/username/%d/%d", x, y))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (c *Client) Leaderboard(ctx context.Context) (protocol.Leaderboard, error) {
	lb, err := getJSON[protocol.Leaderboard](ctx, c, "/api/leaderboard", false)
	if err != nil {
		return nil, err
	}
	return lb.Normalize(), nil
}

func (c *Client) UsersCount(ctx context.Context) (int, error) {
	return getJSON[int](ctx, c, "/api/users/count", false)
}

func (c *Client) UsersConnected(ctx context.Context) (int, error) {
	return getJSON[int](ctx, c, "/api/users/connected", false)
}

// Colors fetches the server palette.
func (c *Client) Colors(ctx context.Context) ([]string, error) {
	cf, err := getJSON[protocol.ColorFile](ctx, c, "/misc/colors.json", false)
	if err != nil {
		return nil, err
	}
	if len(cf.Colors) == 0 {
		return nil, &StatusError{Code: http.StatusNoContent, Body: "empty palette"}
	}
	return cf.Colors, nil
}
