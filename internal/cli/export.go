package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amterp/ra"
	"golang.org/x/image/draw"

	"place/internal/api"
	"place/internal/canvas"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Save the current canvas as a PNG")

	ctx.ExportOut, _ = ra.NewString("out").
		SetOptional(true).
		SetUsage("Output file (default place.png)").
		Register(cmd)

	ctx.ExportScale, _ = ra.NewInt("scale").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetDefault(1).
		SetUsage("Integer upscale factor, nearest neighbour").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(app *App, out string, scale int) {
	if strings.TrimSpace(out) == "" {
		out = "place.png"
	}
	if scale < 1 || scale > 64 {
		Fatalf("scale must be between 1 and 64, got %d", scale)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := exportCanvas(ctx, app.API, out, scale)
	if err != nil {
		Fatal(errors.New(api.Message(err)))
	}
	PrintSuccess("Saved %s (%dx%d, from %s)", res.Path, res.Size.X, res.Size.Y, res.Source)
}

type exported struct {
	Path   string
	Size   image.Point
	Source string
}

func exportCanvas(ctx context.Context, src canvas.Source, out string, scale int) (exported, error) {
	res, err := canvas.Load(ctx, src, canvas.MustDefault())
	if err != nil {
		return exported{}, err
	}
	var img image.Image = res.Board.Image()
	if scale > 1 {
		img = Upscale(img, scale)
	}
	path, err := writePNG(out, img)
	if err != nil {
		return exported{}, err
	}
	return exported{Path: path, Size: img.Bounds().Size(), Source: res.Source}, nil
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, scale int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// writePNG saves img, adding a .png extension when missing, and returns
// the path written.
func writePNG(path string, img image.Image) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}
