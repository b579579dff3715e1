// Package convert drives the per-file conversion pipeline over a directory
// of JavaScript sources.
//
// Each input file is processed start to finish: parse, annotate, splice,
// write. Failures are isolated per file; the remaining files still convert
// and the failed ones are reported in the results.
package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/typeshift/typeshift/internal/config"
	"github.com/typeshift/typeshift/internal/manifest"
)

// Status classifies the outcome for one input file.
type Status int

const (
	Converted Status = iota
	SkippedExisting
	SkippedUnchanged
	Failed
)

func (s Status) String() string {
	switch s {
	case Converted:
		return "converted"
	case SkippedExisting:
		return "skipped (exists)"
	case SkippedUnchanged:
		return "skipped (unchanged)"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result describes the outcome for a single input file.
type Result struct {
	Source string
	Target string
	Status Status
	Err    error
}

// Converter converts every matching file under a source directory.
type Converter struct {
	cfg *config.Config
	man *manifest.Manifest // nil when manifest tracking is disabled
}

func New(cfg *config.Config, man *manifest.Manifest) *Converter {
	return &Converter{cfg: cfg, man: man}
}

// Run converts all inputs and returns one result per file, in path order.
// The returned error covers directory-level failures only; per-file errors
// live in the results.
func (c *Converter) Run() ([]Result, error) {
	inputs, err := c.inputs()
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(inputs))
	for _, path := range inputs {
		results = append(results, c.file(path))
	}
	if c.man != nil {
		converted, skipped, failed := tally(results)
		if err := c.man.Finish(converted, skipped, failed); err != nil {
			return results, err
		}
	}
	return results, nil
}

// TargetPath derives the output path: the first occurrence of the source
// suffix in the file name is replaced with the target suffix.
func (c *Converter) TargetPath(source string) string {
	dir, name := filepath.Split(source)
	return dir + strings.Replace(name, c.cfg.SourceExt, c.cfg.TargetExt, 1)
}

func (c *Converter) file(path string) Result {
	res := Result{Source: path, Target: c.TargetPath(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Status = Failed
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	hash := manifest.HashSource(data)
	if c.man != nil && c.man.Unchanged(path, hash) && exists(res.Target) {
		res.Status = SkippedUnchanged
		return res
	}
	if c.cfg.Overwrite == config.OverwriteSkip && exists(res.Target) {
		res.Status = SkippedExisting
		return res
	}

	output, err := Source(path, string(data))
	if err != nil {
		res.Status = Failed
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	if err := os.WriteFile(res.Target, []byte(output), 0o644); err != nil {
		res.Status = Failed
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	if c.man != nil {
		if err := c.man.Record(path, hash); err != nil {
			res.Status = Failed
			res.Err = err
			return res
		}
	}
	res.Status = Converted
	return res
}

// inputs collects the files to convert. Names carrying the target suffix
// are never inputs, so outputs are not re-consumed when the two suffixes
// overlap.
func (c *Converter) inputs() ([]string, error) {
	var paths []string
	add := func(path string, name string) {
		if strings.HasSuffix(name, c.cfg.SourceExt) && !strings.HasSuffix(name, c.cfg.TargetExt) {
			paths = append(paths, path)
		}
	}

	if c.cfg.Recursive {
		err := filepath.WalkDir(c.cfg.SourceDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(path, d.Name())
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.cfg.SourceDir, err)
		}
	} else {
		entries, err := os.ReadDir(c.cfg.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.cfg.SourceDir, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				add(filepath.Join(c.cfg.SourceDir, entry.Name()), entry.Name())
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func tally(results []Result) (converted, skipped, failed int) {
	for _, r := range results {
		switch r.Status {
		case Converted:
			converted++
		case Failed:
			failed++
		default:
			skipped++
		}
	}
	return
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
