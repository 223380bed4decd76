// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// File represents a plan tracer project file (.planproj). It records the
// input trace, the cleanup settings the user has tuned for it, and where
// the assembled result goes. Paths are stored relative to the project file.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	TracePath  string `json:"trace,omitempty"`
	ResultPath string `json:"result,omitempty"`

	// Drawing scale in real-world units per drawing unit.
	Scale float64 `json:"scale,omitempty"`

	Settings Settings `json:"settings,omitempty"`
}

// Settings holds the cleanup knobs saved with the project.
type Settings struct {
	MinRoomArea      float64 `json:"min_room_area,omitempty"`
	SnapToleranceDeg float64 `json:"snap_tolerance_deg,omitempty"`
	Use45Deg         bool    `json:"use_45_deg"`
	MergeDistance    float64 `json:"merge_distance,omitempty"`
	MaxGap           float64 `json:"max_gap,omitempty"`
	SkipValidate     bool    `json:"skip_validate"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Scale:    1,
		Settings: Settings{
			MinRoomArea:      100,
			SnapToleranceDeg: 5,
			MergeDistance:    5,
			MaxGap:           5,
		},
	}
}

// Load loads a project from a .planproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetTrace sets the trace path (relative to project).
func (p *File) SetTrace(projectPath, tracePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), tracePath)
	if err != nil {
		p.TracePath = tracePath
	} else {
		p.TracePath = rel
	}
	p.Modified = time.Now()
}

// GetTracePath returns the absolute path to the input trace.
func (p *File) GetTracePath(projectPath string) string {
	if p.TracePath == "" {
		return ""
	}
	if filepath.IsAbs(p.TracePath) {
		return p.TracePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.TracePath)
}

// GetResultPath returns the absolute path to the result file.
func (p *File) GetResultPath(projectPath string) string {
	if p.ResultPath == "" {
		// Default: project_name_result.json
		base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
		return base + "_result.json"
	}
	if filepath.IsAbs(p.ResultPath) {
		return p.ResultPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ResultPath)
}
