package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pspoerri/airproj/internal/config"
	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/projection"
	"github.com/pspoerri/airproj/internal/trajectory"
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
		accuracy    float64
		lats        string
		route       string
		geoJSON     bool
		all         bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (AIRPROJ_* env vars override it)")
	flag.StringVar(&ptype, "type", "", "Projection type: SIMPLE, ENU, ORTHO (default: from config)")
	flag.Float64Var(&accuracy, "accuracy", 0, "Allowed projection error in meters (default: from config)")
	flag.StringVar(&lats, "lats", "0,15,30,45,60,75,85", "Comma-separated latitudes in degrees for the envelope table")
	flag.StringVar(&route, "chop", "", "Route to cut into conflict-range legs: \"lat,lon[,alt];lat,lon[,alt];...\"")
	flag.BoolVar(&geoJSON, "geojson", false, "With -chop, print the chopped route as GeoJSON")
	flag.BoolVar(&all, "all", false, "Print the envelope for every projection type")
	flag.BoolVar(&verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: projinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Report projection validity envelopes and cut routes into accurate legs.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("projinfo %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	if ptype != "" {
		cfg.Projection = ptype
	}
	if accuracy > 0 {
		cfg.Accuracy = accuracy
	}

	svc := projection.Default()
	if err := cfg.Apply(svc); err != nil {
		log.Fatalf("Projection: %v", err)
	}
	if verbose {
		log.Printf("Projection %v, accuracy %g m", svc.ProjectionType(), cfg.Accuracy)
	}

	latitudes, err := parseLatitudes(lats)
	if err != nil {
		log.Fatalf("Latitudes: %v", err)
	}

	if route != "" {
		if err := chopRoute(svc, route, cfg.Accuracy, geoJSON, verbose); err != nil {
			log.Fatalf("Chop: %v", err)
		}
		return
	}

	types := []coord.ProjectionType{svc.ProjectionType()}
	if all {
		types = coord.Types()
	}
	for _, t := range types {
		svc.SetProjectionType(t)
		printEnvelope(svc, latitudes, cfg.Accuracy)
	}
}

func printEnvelope(svc *projection.Service, latitudes []float64, accuracy float64) {
	fmt.Printf("%v: max range %.1f km\n", svc.ProjectionType(), svc.MaxRange()/1000)
	fmt.Printf("  %8s  %14s\n", "lat", fmt.Sprintf("conflict@%gm", accuracy))
	for _, lat := range latitudes {
		r := svc.ConflictRange(lat*math.Pi/180, accuracy)
		fmt.Printf("  %7.1f°  %11.1f km\n", lat, r/1000)
	}
}

func chopRoute(svc *projection.Service, s string, accuracy float64, asGeoJSON, verbose bool) error {
	waypoints, err := trajectory.ParseRoute(s)
	if err != nil {
		return err
	}
	chopped, err := trajectory.Chop(svc, waypoints, accuracy)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("%d waypoint(s) → %d point(s)", len(waypoints), len(chopped))
	}

	if asGeoJSON {
		data, err := trajectory.GeoJSON(chopped, map[string]any{
			"projection": svc.ProjectionType().String(),
			"accuracy_m": accuracy,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for i, p := range chopped {
		fmt.Printf("%4d  %10.5f  %11.5f  %8.1f\n", i, p.LatDeg(), p.LonDeg(), p.Alt)
	}
	return nil
}

func parseLatitudes(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
