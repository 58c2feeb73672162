// Package batch converts many OBJ files concurrently.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Areng14/BeePEE/internal/convert"
	"github.com/Areng14/BeePEE/internal/logger"
)

// Config holds the shared settings for a batch run.
type Config struct {
	Options  convert.Options
	Workers  int           // 0 = runtime.NumCPU()
	Progress time.Duration // 0 disables progress lines
}

// Job is one input/output file pair.
type Job struct {
	Input  string
	Output string
}

// Result holds the outcome of one job.
type Result struct {
	Job     Job
	Success bool
	Result  *convert.Result
	Err     error
}

// Discover finds every .obj file under inDir (case-insensitive) and maps it
// to outDir with the same relative path and extension ext. Jobs are sorted
// by input path.
func Discover(inDir, outDir, ext string) ([]Job, error) {
	if ext == "" {
		ext = ".3ds"
	}

	var jobs []Job
	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".obj") {
			return nil
		}

		rel, err := filepath.Rel(inDir, path)
		if err != nil {
			return err
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
		jobs = append(jobs, Job{Input: path, Output: filepath.Join(outDir, rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inDir, err)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Input < jobs[j].Input
	})
	return jobs, nil
}

// Run converts all jobs using a worker pool. Results are returned in job
// order. A failed job does not stop the others.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, total)

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						logger.Info(fmt.Sprintf("[%d/%d] %.1f files/sec", p, total, float64(p)/elapsed))
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	res, err := convert.Run(job.Input, job.Output, cfg.Options)
	if err != nil {
		logger.Failure(convert.Describe(err), zap.String("input", job.Input), zap.Error(err))
		return Result{Job: job, Err: err}
	}
	return Result{Job: job, Success: true, Result: res}
}

// Summary counts successes and failures.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Triangles int
	Bytes     int64
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if !r.Success {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.Triangles += r.Result.Triangles
		s.Bytes += r.Result.Bytes
	}
	return s
}
