package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/image/draw"

	"github.com/gekko3d/lightgrid"
	"github.com/gekko3d/lightgrid/internal/rectworld"
)

func main() {
	mapPath := flag.String("map", "", "YAML map description (required)")
	cfgPath := flag.String("config", "", "YAML grid config (defaults to $"+lightgrid.ConfigEnv+")")
	out := flag.String("out", "lightgrid.png", "PNG output path")
	scale := flag.Int("scale", 16, "Output pixels per lattice cell")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := lightgrid.NewDefaultLogger("lightgrid-dump", *debug)
	if err := run(logger, *mapPath, *cfgPath, *out, *scale); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger lightgrid.Logger, mapPath, cfgPath, out string, scale int) error {
	if mapPath == "" {
		return fmt.Errorf("-map is required")
	}
	if scale < 1 {
		scale = 1
	}

	cfg, err := lightgrid.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	world, err := rectworld.Load(mapPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	mgr := lightgrid.NewManager(cfg, lightgrid.Options{
		Logger:  logger,
		Metrics: lightgrid.NewMetrics(reg),
	})
	grid := mgr.Load(world)
	mgr.Tick()

	events, err := world.ApplyScript()
	if err != nil {
		return err
	}
	for _, ev := range events {
		mgr.Notify(ev)
	}
	mgr.Tick()

	w, h := grid.Dimensions()
	logger.Infof("lattice %dx%d, cell %v, %d sectors, %d scripted changes", w, h, grid.CellSize(), len(grid.Sectors()), len(events))

	img := upscale(latticeImage(grid), scale)
	return writePNG(out, img)
}

// latticeImage draws one pixel per cell with y growing upwards in world
// space, so rows are flipped.
func latticeImage(grid *lightgrid.Grid) *image.RGBA {
	w, h := grid.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			b := grid.Block(lightgrid.GridCoordinate{X: x, Y: y})
			img.Set(x, int(h)-1-y, toRGBA(b.Color()))
		}
	}
	return img
}

func toRGBA(c mgl32.Vec3) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}

func upscale(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
