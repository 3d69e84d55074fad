package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pspoerri/airproj/internal/config"
	"github.com/pspoerri/airproj/internal/geodesy"
	"github.com/pspoerri/airproj/internal/projection"
	"github.com/pspoerri/airproj/internal/trajectory"
)

func main() {
	var (
		configPath  string
		ptype       string
		own         string
		ownVel      string
		intruder    string
		intruderVel string
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (AIRPROJ_* env vars override it)")
	flag.StringVar(&ptype, "type", "", "Projection type: SIMPLE, ENU, ORTHO (default: from config)")
	flag.StringVar(&own, "own", "", "Ownship position \"lat,lon,alt\" (degrees, meters)")
	flag.StringVar(&ownVel, "own-vel", "0,0,0", "Ownship velocity \"east,north,up\" in m/s")
	flag.StringVar(&intruder, "intruder", "", "Intruder position \"lat,lon,alt\" (degrees, meters)")
	flag.StringVar(&intruderVel, "intruder-vel", "0,0,0", "Intruder velocity \"east,north,up\" in m/s")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: projprobe [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Probe two straight-line aircraft for loss of separation.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if own == "" || intruder == "" {
		flag.Usage()
		os.Exit(1)
	}

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

	ownState, err := parseState(own, ownVel)
	if err != nil {
		log.Fatalf("Ownship: %v", err)
	}
	intruderState, err := parseState(intruder, intruderVel)
	if err != nil {
		log.Fatalf("Intruder: %v", err)
	}

	c, err := trajectory.Probe(svc, ownState, intruderState, cfg.ProbeConfig())
	if err != nil {
		log.Fatalf("Probe: %v", err)
	}

	fmt.Printf("projection:       %v\n", svc.ProjectionType())
	fmt.Printf("closest approach: %.1f s, %.0f m horizontal, %.0f m vertical\n", c.TimeCPA, c.DistanceH, c.DistanceV)
	if c.InConflict {
		fmt.Printf("CONFLICT:         %.1f s to %.1f s\n", c.TimeIn, c.TimeOut)
		os.Exit(2)
	}
	fmt.Printf("no conflict within %v\n", cfg.Lookahead)
}

func parseState(pos, vel string) (trajectory.State, error) {
	wps, err := trajectory.ParseRoute(pos)
	if err != nil {
		return trajectory.State{}, err
	}
	if len(wps) != 1 {
		return trajectory.State{}, fmt.Errorf("want one position, got %d", len(wps))
	}

	fields := strings.Split(vel, ",")
	if len(fields) != 3 {
		return trajectory.State{}, fmt.Errorf("velocity %q: want east,north,up", vel)
	}
	var v [3]float64
	for i, f := range fields {
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return trajectory.State{}, fmt.Errorf("velocity %q: %w", vel, err)
		}
	}

	return trajectory.State{
		Pos: geodesy.NewLatLonPosition(wps[0]),
		Vel: geodesy.NewVect3(v[0], v[1], v[2]),
	}, nil
}
