package workload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

type yamlWorkload struct {
	Processes []types.Process `yaml:"processes"`
}

// LoadYAML reads a document with a top-level processes list.
func LoadYAML(r io.Reader) ([]types.Process, error) {
	var doc yamlWorkload
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc.Processes, nil
}

// SaveYAML writes processes in the layout LoadYAML reads.
func SaveYAML(w io.Writer, processes []types.Process) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlWorkload{Processes: processes}); err != nil {
		return err
	}
	return enc.Close()
}

type format int

const (
	formatText format = iota
	formatCSV
	formatYAML
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formatCSV
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatText
	}
}

// ReadFile loads a process file, picking the format from its extension:
// .csv, .yaml/.yml, anything else is the plain-text record.
func ReadFile(path string) ([]types.Process, error) {
	f, closeFn, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var processes []types.Process
	switch formatOf(path) {
	case formatCSV:
		processes, err = LoadCSV(f)
	case formatYAML:
		processes, err = LoadYAML(f)
	default:
		processes, err = Load(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return processes, nil
}

// WriteFile saves processes to path in the format its extension names.
func WriteFile(path string, processes []types.Process) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch formatOf(path) {
	case formatCSV:
		return SaveCSV(f, processes)
	case formatYAML:
		return SaveYAML(f, processes)
	default:
		return Save(f, processes)
	}
}
