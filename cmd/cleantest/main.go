// Command cleantest runs the geometry-cleanup pipeline on a traced sketch
// JSON file and outputs the detected rooms, walls and openings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"plan-tracer/internal/cleanup"
	"plan-tracer/internal/project"
	"plan-tracer/internal/validate"
	"plan-tracer/internal/version"
	"plan-tracer/internal/walls"
	"plan-tracer/pkg/geometry"
)

// traceFile is the on-disk input shape: either segments or polylines.
type traceFile struct {
	Segments  []geometry.Segment  `json:"segments,omitempty"`
	Polylines []geometry.Polyline `json:"polylines,omitempty"`
	Scale     float64             `json:"scale,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "Path to traced geometry JSON ({\"segments\":[...]} or {\"polylines\":[...]})")
	projectPath := flag.String("project", "", "Path to a .planproj project file (supplies input and settings)")
	outPath := flag.String("out", "", "Optional path for the result JSON")
	minArea := flag.Float64("min-area", 100, "Minimum room area")
	snapTol := flag.Float64("snap-tol", 5, "Orthogonal snap tolerance in degrees")
	use45 := flag.Bool("use45", false, "Also snap to 45 degree multiples")
	mergeDistance := flag.Float64("merge-distance", 5, "Parallel merge distance tolerance")
	maxGap := flag.Float64("max-gap", 5, "Maximum bridgeable endpoint gap")
	skipValidate := flag.Bool("skip-validate", false, "Skip the input-quality gate")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cleantest %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	var scaleOverride float64
	if *projectPath != "" {
		proj, err := project.Load(*projectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Project: %s\n", proj.Name)

		// Project settings are defaults; flags given on the command line win.
		if !setFlags["input"] {
			*inputPath = proj.GetTracePath(*projectPath)
		}
		if !setFlags["out"] {
			*outPath = proj.GetResultPath(*projectPath)
		}
		if !setFlags["min-area"] && proj.Settings.MinRoomArea > 0 {
			*minArea = proj.Settings.MinRoomArea
		}
		if !setFlags["snap-tol"] && proj.Settings.SnapToleranceDeg > 0 {
			*snapTol = proj.Settings.SnapToleranceDeg
		}
		if !setFlags["use45"] {
			*use45 = proj.Settings.Use45Deg
		}
		if !setFlags["merge-distance"] && proj.Settings.MergeDistance > 0 {
			*mergeDistance = proj.Settings.MergeDistance
		}
		if !setFlags["max-gap"] && proj.Settings.MaxGap > 0 {
			*maxGap = proj.Settings.MaxGap
		}
		if !setFlags["skip-validate"] {
			*skipValidate = proj.Settings.SkipValidate
		}
		scaleOverride = proj.Scale
	}

	if *inputPath == "" {
		fmt.Println("Usage: cleantest -input <path> [-out result.json] [-min-area 100] [-snap-tol 5]")
		fmt.Println("       cleantest -project <path.planproj>")
		os.Exit(1)
	}

	trace, err := loadTrace(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load trace: %v\n", err)
		os.Exit(1)
	}

	opts := cleanup.DefaultOptions().WithMinArea(*minArea)
	opts.SnapToleranceDeg = *snapTol
	opts.Use45Deg = *use45
	opts.MergeDistance = *mergeDistance
	opts.MaxGap = *maxGap

	var input cleanup.Input
	switch {
	case len(trace.Segments) > 0:
		fmt.Printf("Loaded %d segments\n", len(trace.Segments))
		input = cleanup.SegmentsInput(trace.Segments)
	case len(trace.Polylines) > 0:
		fmt.Printf("Loaded %d polylines\n", len(trace.Polylines))
		if !*skipValidate {
			gate := validate.Check(trace.Polylines, validate.DefaultOptions())
			printStats(gate.Stats)
			if !gate.Valid {
				fmt.Fprintf(os.Stderr, "Input rejected: %s\n", gate.Err)
				os.Exit(1)
			}
		}
		input = cleanup.PolylinesInput(trace.Polylines)
	default:
		fmt.Fprintln(os.Stderr, "Input contains neither segments nor polylines")
		os.Exit(1)
	}

	res := cleanup.Clean(input, opts)

	scale := trace.Scale
	if scale == 0 {
		scale = scaleOverride
	}
	if scale == 0 {
		scale = 1
	}
	result := cleanup.Assemble(res, walls.DefaultOptions(), scale)

	fmt.Printf("\nCleaned lines: %d\n", len(res.Lines))
	fmt.Printf("Rooms detected: %d\n", len(res.Rooms))
	fmt.Printf("%-8s %12s %8s\n", "Room", "Area", "Points")
	for i, room := range res.Rooms {
		fmt.Printf("%-8d %12.1f %8d\n", i+1, room.Area, len(room.Points))
	}

	fmt.Printf("\nWalls: %d  Openings: %d\n", len(result.Walls), len(result.Openings))
	for _, opening := range result.Openings {
		fmt.Printf("  %-8s at (%.1f, %.1f) width %.2f\n",
			opening.Type, opening.Position.X, opening.Position.Y, opening.Width)
	}

	for _, d := range res.Diagnostics {
		fmt.Printf("Warning [%s/%s]: %s\n", d.Stage, d.Code, d.Message)
	}

	if *outPath != "" {
		if err := saveResult(*outPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write result: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nResult written to %s\n", *outPath)
	}
}

func printStats(s validate.Stats) {
	fmt.Printf("Input stats: %d polylines, %d segments, straightness %.2f, closed %.0f%%\n",
		s.PolylineCount, s.SegmentCount, s.MeanStraightness, s.ClosedFraction*100)
}

func loadTrace(path string) (*traceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf traceFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("unmarshal trace: %w", err)
	}
	return &tf, nil
}

func saveResult(path string, result cleanup.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
