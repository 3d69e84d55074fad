package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pspoerri/airproj/internal/config"
	"github.com/pspoerri/airproj/internal/distortion"
	"github.com/pspoerri/airproj/internal/encode"
	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		configPath  string
		ptype       string
		lat, lon    float64
		alt         float64
		extentKM    float64
		size        int
		format      string
		quality     int
		concurrency int
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (AIRPROJ_* env vars override it)")
	flag.StringVar(&ptype, "type", "", "Projection type: SIMPLE, ENU, ORTHO (default: from config)")
	flag.Float64Var(&lat, "lat", 0, "Reference latitude in degrees")
	flag.Float64Var(&lon, "lon", 0, "Reference longitude in degrees")
	flag.Float64Var(&alt, "alt", 0, "Reference altitude in meters")
	flag.Float64Var(&extentKM, "extent", 500, "Half-width of the map in km")
	flag.IntVar(&size, "size", 512, "Output size in pixels")
	flag.StringVar(&format, "format", "png", "Image encoding: png, jpeg, webp, terrarium")
	flag.IntVar(&quality, "quality", 85, "JPEG/WebP quality 1-100")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of parallel workers")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: projmap [flags] <output-image>\n\n")
		fmt.Fprintf(os.Stderr, "Render the distortion of the selected projection around a reference point.\n")
		fmt.Fprintf(os.Stderr, "Green is within the configured accuracy, red is 1000x beyond it,\n")
		fmt.Fprintf(os.Stderr, "transparent is past the projection's max range.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("projmap %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}
	outputPath := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	if ptype != "" {
		cfg.Projection = ptype
	}

	svc := projection.Default()
	if err := cfg.Apply(svc); err != nil {
		log.Fatalf("Projection: %v", err)
	}

	enc, err := encode.NewEncoder(format, quality)
	if err != nil {
		log.Fatalf("Encoder: %v", err)
	}
	if !strings.EqualFold(filepath.Ext(outputPath), enc.FileExtension()) {
		log.Printf("WARNING: output %s does not end in %s", outputPath, enc.FileExtension())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := distortion.Render(ctx, svc, distortion.Options{
		Reference:   geodesy.LLADegrees(lat, lon, alt),
		Extent:      extentKM * 1000,
		Size:        size,
		Accuracy:    cfg.Accuracy,
		Concurrency: concurrency,
		Progress:    verbose,
	})
	if err != nil {
		log.Fatalf("Render: %v", err)
	}

	img := res.Image
	if format == "terrarium" {
		img = res.Terrarium()
	}
	data, err := enc.Encode(img)
	if err != nil {
		log.Fatalf("Encoding %s: %v", enc.Format(), err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatalf("Writing output: %v", err)
	}

	log.Printf("%v around (%.4f°, %.4f°): max error %.3f m within %.0f km, conflict range %.1f km at %g m",
		res.Type, lat, lon, res.MaxError, extentKM,
		svc.ConflictRange(geodesy.LLADegrees(lat, lon, alt).Lat, cfg.Accuracy)/1000, cfg.Accuracy)
	if verbose {
		log.Printf("Wrote %s (%d bytes, %s) in %v", outputPath, len(data), enc.MIMEType(), time.Since(start).Round(time.Millisecond))
	}
}
