package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"panostills/internal/batch"
	"panostills/internal/config"
	"panostills/internal/frames"
	"panostills/internal/sink"
	"panostills/internal/stills"
	"panostills/internal/track"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .yaml config file")
	writeConfig := flag.String("write-config", "", "Write the resolved config to this path and exit")
	input := flag.String("input", "", "Image sequence directory or single equirectangular image")
	outputDir := flag.String("output", "", `Output directory (default: ".")`)
	prefix := flag.String("prefix", "", `Prefix of written files (default: "still")`)
	encoder := flag.String("encoder", "", "Output encoder: jpg, png, webp, bmp or tiff (default: jpg)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	maxWidth := flag.Int("max-width", 0, "Downscale outputs wider than this many pixels")
	startTime := flag.Float64("start", 0, "Start time in seconds from the first frame")
	endTime := flag.Float64("end", -1, "End time in seconds (default: last frame)")
	interval := flag.Int("interval", 0, "Process every n-th frame (default: 1)")
	fps := flag.Float64("fps", 0, "Frame rate of the sequence (default: 30)")
	reproject := flag.Bool("reproject", false, "Reproject stills to six overlapping cube faces")
	faceWidth := flag.Int("face-width", 0, "Cube face width in pixels (default: derived from the frame width)")
	mode := flag.String("mode", "", "Interpolation: bilinear or nearest (default: bilinear)")
	overlap := flag.Float64("overlap", stills.DefaultOverlap, "Face overlap as a fraction of the face width")
	orientation := flag.String("orientation", "", "Face orientation: inside-out or native (default: inside-out)")
	gpx := flag.String("gpx", "", "GPX track used to time and geotag the stills")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log every frame")

	flag.Parse()

	// Logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flag.NFlag() == 0 && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "No arguments supplied")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}

	// CLI flags override config file; floats only when given explicitly.
	flags := config.Flags{
		Input:       *input,
		OutputDir:   *outputDir,
		GPX:         *gpx,
		Prefix:      *prefix,
		Encoder:     *encoder,
		Quality:     *quality,
		MaxWidth:    *maxWidth,
		Interval:    *interval,
		FPS:         *fps,
		Reproject:   *reproject,
		FaceWidth:   *faceWidth,
		Mode:        *mode,
		Orientation: *orientation,
		Workers:     *workers,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			flags.Start = startTime
		case "end":
			flags.End = endTime
		case "overlap":
			flags.Overlap = overlap
		}
	})
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			log.Fatal().Err(err).Msg("writing config")
		}
		log.Info().Str("path", *writeConfig).Msg("config written")
		return
	}

	os.Exit(run(cfg))
}

func run(cfg config.Config) int {
	src, err := frames.Open(cfg.Input, cfg.FPS)
	if err != nil {
		log.Error().Err(err).Msg("opening input")
		return 1
	}
	format, _ := sink.ParseFormat(cfg.Encoder)
	out, err := sink.NewFiles(cfg.OutputDir, format, sink.Options{Quality: cfg.Quality, MaxWidth: cfg.MaxWidth})
	if err != nil {
		log.Error().Err(err).Msg("creating output directory")
		return 1
	}
	opts, err := cfg.StillsOptions()
	if err != nil {
		log.Error().Err(err).Msg("reprojection settings")
		return 1
	}

	var tr *track.Track
	if cfg.GPX != "" {
		tr, err = track.Load(cfg.GPX)
		if err != nil {
			log.Warn().Err(err).Msg("processing WITHOUT GPS coordinates")
			tr = nil
		} else {
			first := tr.At(tr.Start())
			log.Info().
				Float64("lat", first.Lat).
				Float64("lon", first.Lon).
				Float64("elev", first.Elev).
				Time("time", first.Time).
				Time("track_end", tr.End()).
				Float64("track_m", tr.Distance()).
				Msg("found first timestamped location")
		}
	}

	// Frame selection
	startFrame := frames.FrameNumber(src, cfg.Start)
	endFrame := src.Len()
	if *cfg.End >= 0 {
		endFrame = frames.FrameNumber(src, *cfg.End)
	}
	frameNums := frames.Range(src, startFrame, endFrame, cfg.Interval)

	// Print summary
	faceW := "derived from frame width"
	if opts.FaceWidth > 0 {
		faceW = fmt.Sprint(opts.FaceWidth)
	}
	ev := log.Info().
		Str("input", cfg.Input).
		Str("output", cfg.OutputDir).
		Str("encoder", format.Ext()).
		Str("prefix", cfg.Prefix).
		Float64("start_s", cfg.Start).
		Float64("end_s", *cfg.End).
		Int("interval", cfg.Interval).
		Bool("reproject", cfg.Reproject)
	if cfg.Reproject {
		ev = ev.Str("mode", opts.Mode.String()).
			Str("face_width", faceW).
			Float64("overlap", opts.Overlap).
			Str("orientation", opts.Orientation.Name)
	}
	ev.Msg("settings")
	log.Info().
		Int("frames", len(frameNums)).
		Int("workers", cfg.Workers).
		Float64("fps", src.FPS()).
		Msgf("processing from frame %d until frame %d", startFrame, endFrame)

	if len(frameNums) == 0 {
		log.Info().Msg("no frames to process")
		return 0
	}

	start := time.Now()

	// Run batch
	results := batch.Run(batch.Config{
		Source:    src,
		Sink:      out,
		Track:     tr,
		Prefix:    cfg.Prefix,
		Reproject: cfg.Reproject,
		Stills:    opts,
		Workers:   cfg.Workers,
		Logger:    log.Logger,
	}, frameNums)

	// Count results
	var failed []batch.Result
	files := 0
	for _, r := range results {
		if r.Success {
			files += len(r.Files)
		} else {
			failed = append(failed, r)
		}
	}
	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("stills", len(results)-len(failed)).
		Int("files", files).
		Msg("done")

	limit := min(len(failed), 20)
	for _, r := range failed[:limit] {
		log.Error().Int("frame", r.Frame).Str("error", r.Error).Msg("frame failed")
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn().Err(err).Msg("manifest write failed")
	} else {
		log.Info().Str("path", manifestPath).Msg("manifest written")
	}

	if len(failed) > 0 {
		return 1
	}
	return 0
}
