package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotAnExport = errors.New("export marker 'user.json' not found")

// Paths 是一次转换共享的只读路径配置。
type Paths struct {
	ExportPath  string
	ContentPath string
	StaticPath  string
}

// NewPaths derives the content and static roots from the output root.
func NewPaths(exportPath, outputPath string) Paths {
	return Paths{
		ExportPath:  exportPath,
		ContentPath: filepath.Join(outputPath, "content"),
		StaticPath:  filepath.Join(outputPath, "static"),
	}
}

// Options carries optional collaborators. Zero values fall back to a stderr logger
// and a recorder that discards everything.
type Options struct {
	Logger   *log.Logger
	Recorder Recorder
}

type runEnv struct {
	logger   *log.Logger
	recorder Recorder
}

func (o Options) env() runEnv {
	env := runEnv{logger: o.Logger, recorder: o.Recorder}
	if env.logger == nil {
		env.logger = log.New(os.Stderr, "", 0)
	}
	if env.recorder == nil {
		env.recorder = nopRecorder{}
	}
	return env
}

// Converter 按顺序转换导出目录中选中的项目。
type Converter struct {
	paths Paths
	opts  Options
}

// NewConverter creates a Converter.
func NewConverter(paths Paths, opts Options) *Converter {
	return &Converter{paths: paths, opts: opts}
}

// Run converts the selected projects. A nil selection means every project; an
// empty non-nil selection converts nothing.
// Processing stops at the first failing project.
func (c *Converter) Run(selection []string) error {
	handles, err := c.Projects(selection)
	if err != nil {
		return err
	}

	projects := NewProjectAssembler(c.paths, c.opts)
	for _, handle := range handles {
		if err := projects.Assemble(handle); err != nil {
			return fmt.Errorf("processing project %q: %w", handle, err)
		}
	}
	return nil
}

// Projects lists project handles in the export, filtered by selection.
func (c *Converter) Projects(selection []string) ([]string, error) {
	markerPath := filepath.Join(c.paths.ExportPath, "user.json")
	if _, err := os.Stat(markerPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in '%s' - is this a valid export?", ErrNotAnExport, c.paths.ExportPath)
		}
		return nil, fmt.Errorf("checking '%s': %w", markerPath, err)
	}

	projectRoot := filepath.Join(c.paths.ExportPath, "project")
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", projectRoot, err)
	}

	var wanted map[string]struct{}
	if selection != nil {
		wanted = make(map[string]struct{}, len(selection))
		for _, handle := range selection {
			wanted[handle] = struct{}{}
		}
	}

	handles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[entry.Name()]; !ok {
				continue
			}
		}
		handles = append(handles, entry.Name())
	}
	return handles, nil
}

// ParseSelection splits a comma-separated list of project handles. A blank value
// returns nil (all projects); a value with no handles, such as ",", returns an
// empty selection.
func ParseSelection(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	raw := strings.Split(value, ",")
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
