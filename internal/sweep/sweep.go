// Package sweep renders one scene per refraction setting on a pool of worker
// goroutines and ranks the results by how strongly the field shaped them.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"walks/internal/core"
	"walks/internal/scene"
	"walks/internal/surface"
)

// Params is one point of the sweep grid.
type Params struct {
	Strength  float64
	Threshold float64
}

func (p Params) String() string {
	return fmt.Sprintf("refraction=%.2f threshold=%.2f", p.Strength, p.Threshold)
}

// Result is the outcome of one scenario.
type Result struct {
	Params  Params
	Stats   scene.Stats
	Ink     float64 // share of pixels that differ from the background
	Elapsed time.Duration
	Path    string // PNG written for the scenario, if any
	Err     error
}

// Options configures a sweep.
type Options struct {
	Base    scene.Config
	Workers int
	// OutDir, when set, receives one PNG per scenario.
	OutDir string
	Logger *log.Logger
}

// Grid returns the cross product of strengths and thresholds.
func Grid(strengths, thresholds []float64) []Params {
	sets := make([]Params, 0, len(strengths)*len(thresholds))
	for _, s := range strengths {
		for _, th := range thresholds {
			sets = append(sets, Params{Strength: s, Threshold: th})
		}
	}
	return sets
}

// Run renders every parameter set and returns the results ordered by bend
// count, highest first. Scenarios that fail keep their error in Result.Err;
// the returned error is only set when ctx ends early or the base config is
// unusable.
func Run(ctx context.Context, sets []Params, opts Options) ([]Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	base := opts.Base
	base.Mode = "immediate"
	if !base.UsesRefraction() {
		base.Transform += "+refract"
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	jobs := make(chan Params)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(ctx, base, params, opts.OutDir)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(sets))
	for res := range results {
		if res.Err != nil {
			opts.Logger.Warn("scenario failed", "params", res.Params, "err", res.Err)
		} else {
			opts.Logger.Debug("scenario done", "params", res.Params, "bends", res.Stats.Bends, "elapsed", res.Elapsed)
		}
		all = append(all, res)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Stats.Bends != all[j].Stats.Bends {
			return all[i].Stats.Bends > all[j].Stats.Bends
		}
		return all[i].Ink > all[j].Ink
	})
	return all, ctx.Err()
}

func runScenario(ctx context.Context, base scene.Config, params Params, outDir string) Result {
	start := time.Now()
	res := Result{Params: params}

	cfg := base
	cfg.Refraction.Strength = params.Strength
	cfg.Refraction.Threshold = params.Threshold
	if err := cfg.Validate(); err != nil {
		res.Err = err
		return res
	}

	raster, err := surface.NewRaster(core.Size{W: cfg.Width, H: cfg.Height})
	if err != nil {
		res.Err = err
		return res
	}
	defer raster.Close()

	sc, err := scene.Assemble(cfg, raster)
	if err != nil {
		res.Err = err
		return res
	}
	runErr := sc.Run(ctx)
	res.Stats = sc.Stats()
	res.Ink = ink(raster.Image(), cfg.Background)
	if outDir != "" && runErr == nil {
		res.Path = filepath.Join(outDir, fmt.Sprintf("refract-%.2f-%.2f.png", params.Strength, params.Threshold))
		runErr = raster.SavePNG(res.Path)
	}
	res.Err = runErr
	res.Elapsed = time.Since(start)
	return res
}

// ink measures the share of pixels that differ from the background color.
func ink(img image.Image, background string) float64 {
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if c, err := colorful.Hex(background); err == nil {
		r, g, b := c.RGB255()
		bg = color.NRGBA{R: r, G: g, B: b, A: 255}
	} else if background == "" {
		bg = color.NRGBA{}
	}
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}
	marked := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) != bg {
				marked++
			}
		}
	}
	return float64(marked) / float64(total)
}

// Best returns the first successful result.
func Best(results []Result) (Result, error) {
	for _, r := range results {
		if r.Err == nil {
			return r, nil
		}
	}
	return Result{}, errors.New("sweep: no scenario succeeded")
}
