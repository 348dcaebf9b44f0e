package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgrid/go-ledanim/internal/imaging"
)

// DimensionGroup is one distinct (type, width, height) bucket found
// during pre-export validation.
type DimensionGroup struct {
	Type   string
	Width  int
	Height int
	Files  []string
}

func (g DimensionGroup) String() string {
	return fmt.Sprintf("%s %dx%d (%d files)", g.Type, g.Width, g.Height, len(g.Files))
}

// InconsistentDimensionsError reports a source folder whose images do
// not all share one frame descriptor. Every distinct group is listed
// so the caller can show specifics.
type InconsistentDimensionsError struct {
	Groups []DimensionGroup
}

func (e *InconsistentDimensionsError) Error() string {
	parts := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		parts[i] = g.String()
	}
	return "inconsistent frame dimensions: " + strings.Join(parts, ", ")
}

// validateFrames probes every source file and fails if more than one
// (type, width, height) group exists. Runs before any output byte is
// written.
func validateFrames(files []string) (imaging.Info, error) {
	groups := make(map[imaging.Info]*DimensionGroup)
	for _, f := range files {
		info, err := imaging.Probe(f)
		if err != nil {
			return imaging.Info{}, err
		}
		g, ok := groups[info]
		if !ok {
			g = &DimensionGroup{Type: info.Type, Width: info.Width, Height: info.Height}
			groups[info] = g
		}
		g.Files = append(g.Files, f)
	}

	if len(groups) > 1 {
		err := &InconsistentDimensionsError{}
		for _, g := range groups {
			err.Groups = append(err.Groups, *g)
		}
		sort.Slice(err.Groups, func(i, j int) bool {
			return err.Groups[i].String() < err.Groups[j].String()
		})
		return imaging.Info{}, err
	}
	for info := range groups {
		return info, nil
	}
	return imaging.Info{}, fmt.Errorf("no source frames to validate")
}
