// Command sudokuread reads a puzzle from a photo, prints it and solves it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"sudoku-reader/internal/config"
	"sudoku-reader/internal/extract"
	imgutil "sudoku-reader/internal/image"
	"sudoku-reader/internal/ocr"
	"sudoku-reader/internal/solver"
	"sudoku-reader/internal/version"

	"github.com/sirupsen/logrus"
)

func main() {
	photo := flag.String("f", "", "Path to the puzzle photo")
	configPath := flag.String("c", "sudokuread.yaml", "Path to the YAML config")
	verbose := flag.Bool("v", false, "Enable debug logging")
	dumpDir := flag.String("dump", "", "Write debug images (corners, grid, cell canvases) into this directory")
	showVersion := flag.Bool("version", false, "Print version and exit")
	writeConfig := flag.Bool("write-config", false, "Write the default config to the -c path and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *writeConfig {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default config written to %s\n", *configPath)
		return
	}

	if *photo == "" {
		fmt.Println("Usage: sudokuread -f <photo> [-c config.yaml] [-v] [-dump dir]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Output.Verbose = true
	}

	logger := initLogger(cfg.Output.Verbose, cfg.Output.JSONLogs)
	logger.WithFields(logrus.Fields{
		"version": version.Version,
		"photo":   *photo,
	}).Info("reading puzzle")

	if !imgutil.IsSupportedFormat(*photo) {
		logger.WithField("photo", *photo).Warn("unrecognized file extension, trying to decode anyway")
	}

	puzzle, err := readPuzzle(context.Background(), cfg, logger, *photo, *dumpDir)
	if err != nil {
		logger.WithError(err).Error("failed to read puzzle")
		os.Exit(1)
	}

	fmt.Println("Interpreted the puzzle to be:")
	fmt.Print(puzzle)

	solved, err := solver.SolveErr(puzzle)
	switch {
	case errors.Is(err, solver.ErrInvalidBoard):
		fmt.Println("\nThe recognized puzzle breaks the rules. Take a new picture and try again.")
		os.Exit(1)
	case err != nil:
		fmt.Println("\nNo solution was found. Take a new picture and try again.")
		os.Exit(1)
	}

	fmt.Println("\nSolution:")
	fmt.Print(solved)
}

// readPuzzle runs the photo through extraction and recognition.
func readPuzzle(ctx context.Context, cfg *config.Config, logger *logrus.Logger, path, dumpDir string) (solver.Board, error) {
	gray, err := imgutil.LoadGray(path)
	if err != nil {
		return solver.Board{}, err
	}

	src, err := imgutil.MatFromGray(gray)
	if err != nil {
		return solver.Board{}, err
	}
	defer src.Close()

	p := cfg.Processing
	working := imgutil.ResizeToWorking(src, p.WorkingWidth, p.WorkingHeight)
	defer working.Close()

	workingGray, err := imgutil.GrayFromMat(working)
	if err != nil {
		return solver.Board{}, err
	}

	opts := extract.Options{
		Workers:        p.NumWorkers,
		ExpandRatio:    p.ExpandRatio,
		ThickLine:      p.ThickLine,
		ThinLine:       p.ThinLine,
		BlurKernel:     p.BlurKernel,
		ThresholdBlock: p.ThresholdBlock,
		ThresholdC:     float32(p.ThresholdC),
	}
	dim := image.Pt(p.CanvasSize, p.CanvasSize)

	x, err := extract.New(opts, logger).Extract(ctx, workingGray, dim)
	if err != nil {
		return solver.Board{}, err
	}

	if dumpDir != "" {
		if err := dumpExtraction(dumpDir, workingGray, x, p.ExpandRatio); err != nil {
			return solver.Board{}, err
		}
		logger.WithField("dir", dumpDir).Info("debug images written")
	}

	engine, err := ocr.NewEngine(cfg.OCR.Language, cfg.OCR.Whitelist)
	if err != nil {
		return solver.Board{}, err
	}
	defer engine.Close()

	return ocr.ReadBoard(x.Results, engine)
}

// initLogger initializes the logger with appropriate level and format
func initLogger(debugMode, jsonLogs bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if jsonLogs {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
