// Package batch runs frames through decode, reprojection and output on a
// pool of workers.
package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"panostills/internal/frames"
	"panostills/internal/projection"
	"panostills/internal/sink"
	"panostills/internal/stills"
	"panostills/internal/track"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Source frames.Source
	Sink   sink.Sink
	Track  *track.Track // optional
	Start  time.Time    // time of frame 0; defaults to the track start
	Prefix string

	Reproject bool
	Stills    stills.Options

	Workers int
	Logger  zerolog.Logger
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame    int
	Time     time.Time
	Position *track.Point
	Files    []string
	Success  bool
	Error    string
}

// ProgressInterval is how often Run reports progress.
var ProgressInterval = 2 * time.Second

// Run processes the given frames using a worker pool. Results are in the
// order of frameNums; a failed frame does not stop the others.
func Run(cfg Config, frameNums []int) []Result {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Start.IsZero() && cfg.Track != nil {
		cfg.Start = cfg.Track.Start()
	}

	total := len(frameNums)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Logger.Info().
						Int64("done", p).
						Int("total", total).
						Float64("frames_per_sec", float64(p)/elapsed).
						Msg("progress")
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processFrame(cfg, frameNums[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frameNums {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

// FrameTime returns the capture time of frame n.
func FrameTime(start time.Time, n int, fps float64) time.Time {
	return start.Add(time.Duration(float64(n) / fps * float64(time.Second)))
}

func processFrame(cfg Config, n int) Result {
	res := Result{Frame: n}
	log := cfg.Logger.With().Int("frame", n).Logger()

	img, err := cfg.Source.Frame(n)
	if err != nil {
		res.Error = err.Error()
		log.Warn().Err(err).Msg("read failed")
		return res
	}

	var tags sink.Tags
	if !cfg.Start.IsZero() {
		res.Time = FrameTime(cfg.Start, n, cfg.Source.FPS())
		tags = sink.Tags{sink.TagTime: res.Time.UTC().Format(sink.TagTimeLayout)}
		if cfg.Track != nil {
			p := cfg.Track.At(res.Time)
			res.Position = &p
			tags = p.Tags()
		}
	}

	outputs := []*projection.Image{img}
	names := []string{sink.StillName(cfg.Prefix, n)}
	if cfg.Reproject {
		faces, err := stills.Reproject(img, cfg.Stills)
		if err != nil {
			res.Error = fmt.Sprintf("reproject: %v", err)
			log.Warn().Err(err).Msg("reproject failed")
			return res
		}
		outputs = faces
		names = names[:0]
		for _, f := range projection.Faces {
			names = append(names, sink.FaceName(cfg.Prefix, n, f))
		}
	}

	for i, out := range outputs {
		path, err := cfg.Sink.Write(names[i], out, tags)
		if err != nil {
			res.Error = err.Error()
			log.Warn().Err(err).Str("name", names[i]).Msg("write failed")
			return res
		}
		res.Files = append(res.Files, path)
	}

	log.Debug().Strs("files", res.Files).Msg("frame done")
	res.Success = true
	return res
}
