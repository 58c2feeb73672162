// 3dstool is a CLI utility for inspecting and producing 3DS collision models.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Areng14/BeePEE/internal/batch"
	"github.com/Areng14/BeePEE/internal/config"
	"github.com/Areng14/BeePEE/internal/convert"
	"github.com/Areng14/BeePEE/internal/logger"
	"github.com/Areng14/BeePEE/internal/watch"
	"github.com/Areng14/BeePEE/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "batch":
		cmdBatch(args)
	case "watch":
		cmdWatch(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`3dstool - 3DS collision model utility

Usage:
  3dstool <command> [options]

Commands:
  info <file.3ds>                              Show chunk tree and mesh summary
  batch [options] <in-dir> <out-dir> [s r p y] Convert every .obj under in-dir
  watch [options] <in.obj> <out.3ds> [s r p y] Reconvert whenever in.obj changes
  config [path]                                Write the default config file

Examples:
  3dstool info collision.3ds
  3dstool batch -workers 4 ./meshes ./models 0.5
  3dstool watch door.obj door.3ds 1 0 0 90
  3dstool config ./obj23ds.yaml`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: 3dstool info <file.3ds>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := printInfo(os.Stdout, args[0], data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printInfo writes the chunk tree and mesh summary of a 3DS file to w.
func printInfo(w io.Writer, name string, data []byte) error {
	root, err := formats.Decode3DS(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File:   %s\n", name)
	fmt.Fprintf(w, "Size:   %d bytes\n", len(data))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chunks:")
	root.Walk(func(c *formats.Chunk, depth int) {
		fmt.Fprintf(w, "  %s0x%04X %-12s %d\n", strings.Repeat("  ", depth), c.ID, formats.ChunkName(c.ID), c.Size())
	})

	m, err := formats.ExtractMesh3DS(root)
	if err != nil {
		return err
	}
	stats := m.Mesh.Stats()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Object:    %q\n", m.Name)
	fmt.Fprintf(w, "Vertices:  %d\n", stats.Vertices)
	fmt.Fprintf(w, "Triangles: %d\n", stats.Triangles)
	if stats.Vertices > 0 {
		b := stats.Bounds
		size := b.Size()
		fmt.Fprintf(w, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Fprintf(w, "Extent:    %g x %g x %g\n", size.X, size.Y, size.Z)
	}
	return nil
}

// setup loads config from path, starts the logger and resolves the
// conversion options from the positional values after the first two args.
func setup(path string, debug bool, args []string) (*config.Config, string, string, convert.Options) {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Config error: %v\n", err)
		os.Exit(convert.ExitFailure)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Logger error: %v\n", err)
		os.Exit(convert.ExitFailure)
	}

	in, out, opts, err := convert.ParseArgs(args, convert.OptionsFromConfig(cfg.Convert))
	if err != nil {
		logger.Failure(convert.Describe(err), zap.Error(err))
		logger.Sync()
		os.Exit(convert.ExitCode(err))
	}
	return cfg, in, out, opts
}

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	workers := fs.Int("workers", -1, "Number of workers (0 = one per CPU, default from config)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: 3dstool batch [-workers N] [-config path] <in-dir> <out-dir> [scale] [roll] [pitch] [yaw]")
		os.Exit(1)
	}

	cfg, inDir, outDir, opts := setup(*configPath, *debug, fs.Args())
	defer logger.Sync()

	jobs, err := batch.Discover(inDir, outDir, cfg.Batch.Extension)
	if err != nil {
		logger.Failure("Failed to scan input directory", zap.Error(err))
		os.Exit(convert.ExitFailure)
	}
	if len(jobs) == 0 {
		logger.Warn("No .obj files found", zap.String("dir", inDir))
		return
	}

	bcfg := batch.Config{
		Options:  opts,
		Workers:  cfg.Batch.Workers,
		Progress: 2 * time.Second,
	}
	if *workers >= 0 {
		bcfg.Workers = *workers
	}

	start := time.Now()
	results := batch.Run(bcfg, jobs)
	summary := batch.Summarize(results)

	logger.Info(fmt.Sprintf("Converted %d/%d files in %s", summary.Succeeded, summary.Total, time.Since(start).Round(time.Millisecond)),
		zap.Int("triangles", summary.Triangles),
		zap.Int64("bytes", summary.Bytes))

	if summary.Failed > 0 {
		logger.Failure(fmt.Sprintf("%d file(s) failed", summary.Failed))
		logger.Sync()
		os.Exit(convert.ExitFailure)
	}
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: 3dstool watch [-config path] <input.obj> <output.3ds> [scale] [roll] [pitch] [yaw]")
		os.Exit(1)
	}

	cfg, in, out, opts := setup(*configPath, *debug, fs.Args())
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wcfg := watch.Config{
		Input:    in,
		Output:   out,
		Options:  opts,
		Debounce: cfg.Watch.Debounce,
	}
	if err := watch.Watch(ctx, wcfg, nil); err != nil {
		logger.Failure("Watch failed", zap.Error(err))
		logger.Sync()
		os.Exit(convert.ExitFailure)
	}
}

func cmdConfig(args []string) {
	path, err := writeDefaultConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config: %s\n", path)
}

// writeDefaultConfig saves the default config to args[0], or to the user
// config directory when no path is given. Returns the path written.
func writeDefaultConfig(args []string) (string, error) {
	cfg := config.Default()
	if len(args) > 0 {
		return args[0], cfg.SaveTo(args[0])
	}
	return config.DefaultPath(), cfg.Save()
}
