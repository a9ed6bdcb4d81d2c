// Package casefile reads port hole cases from YAML files and watches them
// for edits.
//
// A case file mirrors porthole.Input:
//
//	geometry:
//	  pressure_bar: 207
//	  bore_mm: 75
//	  outer_dia_mm: 87
//	material:
//	  sut_kgf_mm2: 60
//	k_factors:
//	  ka: 0.75
//
// Keys left out keep their default values.
package casefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"Porthole/internal/calc/porthole"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Load reads the case at path over porthole.Defaults.
func Load(path string) (porthole.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return porthole.Input{}, fmt.Errorf("case file: read %q: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (porthole.Input, error) {
	in := porthole.Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return porthole.Input{}, fmt.Errorf("case file: parse yaml: %w", err)
	}
	return in, nil
}

// Marshal renders in as a case file.
func Marshal(in porthole.Input) ([]byte, error) {
	return yaml.Marshal(in)
}

// Watch calls onChange with the reloaded case every time path is written
// or replaced. It runs until ctx is cancelled. A reload that fails is logged
// and the previous case stays in effect.
//
// The watch is on the parent directory so that saves which rename a new
// file over path keep being seen.
func Watch(ctx context.Context, path string, onChange func(porthole.Input)) error {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("case file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("case file: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename over path arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			in, err := Load(path)
			if err != nil {
				slog.Error("case file: reload failed, keeping previous case", "path", path, "err", err)
				continue
			}
			onChange(in)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("case file: watcher error", "err", err)
		}
	}
}
