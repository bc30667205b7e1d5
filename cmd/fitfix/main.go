package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/clean"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/config"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/fitio"
)

func main() {
	var (
		outputFile    = flag.String("o", "", "Output FIT file (default: <input>-new.fit)")
		speedLimit    = flag.Float64("speed-limit", 0, "Maximum plausible speed in m/s (default 30)")
		maxRejections = flag.Int("max-rejections", 0, "Consecutive speed rejections before aborting (default 10)")
		configFile    = flag.String("config", "", "Threshold config file (default: fitfix.yml if present)")
		dryRun        = flag.Bool("dry-run", false, "Show statistics without writing output file")
		showStats     = flag.Bool("stats", false, "Show detailed statistics")
		statsJSON     = flag.Bool("stats-json", false, "Output statistics as JSON")
		verbose       = flag.Bool("v", false, "Enable debug logging")
		version       = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("fitfix - Remove corrupted GPS samples from FIT activities\n\n")
		fmt.Printf("usage: fitfix [options] <file.fit>\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  fitfix track.fit\n")
		fmt.Printf("  fitfix -speed-limit 15 \"Morning Run.fit\"\n")
		fmt.Printf("  fitfix -dry-run -stats track.fit\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("fitfix v1.0.0 - FIT track cleaner")
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputFile := flag.Arg(0)

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := clean.DefaultConfig()
	if err := applyConfigFile(&cfg, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *speedLimit > 0 {
		cfg.SpeedLimitMS = *speedLimit
	}
	if *maxRejections > 0 {
		cfg.MaxConsecutiveRejections = *maxRejections
	}

	if *outputFile == "" {
		*outputFile = fitio.OutputPath(inputFile)
	}

	fmt.Printf("Decoding file: %s\n", inputFile)
	doc, err := fitio.Load(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading FIT file: %v\n", err)
		os.Exit(1)
	}

	messages := doc.Messages()
	if len(messages) == 0 {
		fmt.Fprintf(os.Stderr, "No messages found in file\n")
		os.Exit(1)
	}

	cleaner := clean.New(cfg, logger)
	result, err := cleaner.ExtractBounds(messages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error cleaning track: %v\n", err)
		os.Exit(1)
	}

	if *showStats || *statsJSON || *dryRun {
		if *statsJSON {
			jsonData, err := json.MarshalIndent(result.Stats, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
		} else {
			printStats(result.Stats)
		}
	}

	if *dryRun {
		fmt.Printf("Dry run completed - no files written\n")
		os.Exit(0)
	}

	doc.Apply(result.Messages)
	if err := doc.Write(*outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing FIT file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Removed %d of %d track points (%.1f%%)\n",
		result.Stats.PointsRemoved, result.Stats.TrackPoints, result.Stats.PointsPercent)
	fmt.Printf("Created file: %s\n", *outputFile)
}

// applyConfigFile layers file-provided thresholds over the defaults. An
// explicit path must load; the probed default path may be absent.
func applyConfigFile(cfg *clean.Config, path string) error {
	var (
		file *config.File
		err  error
	)
	if path != "" {
		file, err = config.Load(path)
	} else {
		file, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}

	if file.SpeedLimitMS > 0 {
		cfg.SpeedLimitMS = file.SpeedLimitMS
	}
	if file.MaxConsecutiveRejections > 0 {
		cfg.MaxConsecutiveRejections = file.MaxConsecutiveRejections
	}
	return nil
}

func printStats(stats clean.Stats) {
	fmt.Printf("\nCleaning Statistics:\n")
	fmt.Printf("  Messages: %d → %d\n", stats.OriginalMessages, stats.FinalMessages)
	fmt.Printf("  Track points: %d (%d removed, %.1f%%)\n",
		stats.TrackPoints, stats.PointsRemoved, stats.PointsPercent)
	fmt.Printf("  Position outliers: %d (bucket width %d semicircles)\n",
		stats.PositionOutliers, stats.BucketSemicircles)
	fmt.Printf("  Speed outliers: %d\n", stats.SpeedOutliers)
	fmt.Printf("  Speed profile: P95=%.1f m/s, max=%.1f m/s\n", stats.P95Speed, stats.MaxSpeed)
	fmt.Printf("  Processing time: %v\n", stats.ProcessingTime)
}
