// obj23ds converts a Wavefront OBJ mesh into a 3DS collision model.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Areng14/BeePEE/internal/config"
	"github.com/Areng14/BeePEE/internal/convert"
	"github.com/Areng14/BeePEE/internal/logger"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Config error: %v\n", err)
		os.Exit(convert.ExitFailure)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Logger error: %v\n", err)
		os.Exit(convert.ExitFailure)
	}

	os.Exit(run(cfg, config.Args()))
}

// run performs the conversion and returns the process exit code.
func run(cfg *config.Config, args []string) int {
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	input, output, opts, err := convert.ParseArgs(args, convert.OptionsFromConfig(cfg.Convert))
	if err != nil {
		logger.Failure(convert.Describe(err), zap.Error(err))
		if len(args) < 2 {
			printUsage()
		}
		return convert.ExitCode(err)
	}

	res, err := convert.Run(input, output, opts)
	if err != nil {
		logger.Failure(convert.Describe(err), zap.Error(err))
		return convert.ExitCode(err)
	}

	logger.Debug("Conversion finished",
		zap.Int("polygons", res.Polygons),
		zap.Duration("elapsed", res.Elapsed))
	return convert.ExitOK
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `obj23ds - convert an OBJ mesh to a 3DS collision model

Usage:
  obj23ds [options] <input.obj> <output.3ds> [scale] [roll] [pitch] [yaw]

Arguments:
  scale   Uniform scale factor, must be greater than 0 (default 1)
  roll    Rotation about X in degrees (default 0)
  pitch   Rotation about Y in degrees (default 0)
  yaw     Rotation about Z in degrees (default 0)

Options:`)
	flag.PrintDefaults()
}
