package canvas

import (
	"context"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"place/internal/protocol"
)

// Source is the part of the REST client a canvas load needs.
type Source interface {
	Colors(ctx context.Context) ([]string, error)
	Size(ctx context.Context) (int, int, error)
	Snapshot(ctx context.Context) (image.Image, error)
	Updates(ctx context.Context) ([]protocol.PixelUpdate, error)
	Pixels(ctx context.Context) ([]byte, error)
}

// Loaded is a freshly fetched board. Colors is nil when the server palette
// was unavailable and the fallback was used.
type Loaded struct {
	Board  *Board
	Colors []string
	Source string
}

// Load fetches the palette and the full canvas. The PNG snapshot plus
// pending updates is preferred; the raw index dump is the fallback for
// servers that do not render PNGs.
func Load(ctx context.Context, src Source, fallback *Palette) (Loaded, error) {
	var out Loaded
	pal := fallback
	if hexes, err := src.Colors(ctx); err != nil {
		log.Debug().Str("component", "net").Err(err).Msg("colors.json unavailable, using default palette")
	} else if p, err := NewPalette(hexes); err != nil {
		log.Warn().Str("component", "net").Err(err).Msg("bad colors.json")
	} else {
		pal = p
		out.Colors = hexes
	}

	w, h, err := src.Size(ctx)
	if err != nil {
		return out, fmt.Errorf("canvas size: %w", err)
	}
	b := NewBoard(w, h)

	if err := loadSnapshot(ctx, src, b, pal); err != nil {
		log.Warn().Str("component", "net").Err(err).Msg("snapshot failed, falling back to pixel dump")
		raw, err := src.Pixels(ctx)
		if err != nil {
			return out, fmt.Errorf("pixels: %w", err)
		}
		if err := b.LoadIndices(raw, pal); err != nil {
			return out, err
		}
		out.Source = "pixels"
	} else {
		out.Source = "png"
	}
	out.Board = b
	return out, nil
}

func loadSnapshot(ctx context.Context, src Source, b *Board, pal *Palette) error {
	img, err := src.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := b.LoadSnapshot(img); err != nil {
		return err
	}
	ups, err := src.Updates(ctx)
	if err != nil {
		return fmt.Errorf("updates: %w", err)
	}
	for _, u := range ups {
		b.Set(u.X, u.Y, u.Color, pal)
	}
	return nil
}
