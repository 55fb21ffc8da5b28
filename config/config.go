// Package config loads the session controller's tunables the way
// cmd/multiserver loads its server config: koanf struct defaults
// overlaid with an optional YAML file, with a missing file tolerated
// rather than treated as an error.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	yml "github.com/go-yaml/yaml"
)

// Options mirrors spec.md §6's three tunables.
type Options struct {
	AutoReconnect           bool    `koanf:"auto_reconnect" yaml:"auto_reconnect"`
	ReconnectTimeoutSeconds uint    `koanf:"reconnect_timeout_seconds" yaml:"reconnect_timeout_seconds"`
	StatusMaxAgeSeconds     float64 `koanf:"status_max_age_seconds" yaml:"status_max_age_seconds"`
}

// Defaults matches the vendor library's Options defaults: reconnect
// enabled, a 60 second reconnect timeout, and a 0.5 second status
// freshness window.
var Defaults = Options{
	AutoReconnect:           true,
	ReconnectTimeoutSeconds: 60,
	StatusMaxAgeSeconds:     0.5,
}

// Load builds an Options starting from Defaults and overlaying path if it
// exists. A missing file is not an error.
func Load(path string) (Options, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults, "koanf"), nil); err != nil {
		return Options{}, fmt.Errorf("config: loading defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") {
			return Options{}, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	var o Options
	if err := k.Unmarshal("", &o); err != nil {
		return Options{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return o, nil
}

// WriteDefaults writes Defaults to path as YAML, the way multiserver's
// mkconf seeds a starter config file.
func WriteDefaults(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := yml.NewEncoder(f).Encode(Defaults); err != nil {
		return fmt.Errorf("config: encoding defaults: %w", err)
	}
	return nil
}

// Watch watches path for writes and calls onChange with the freshly
// loaded Options after each one. It promotes fsnotify (an indirect
// dependency of koanf's file provider in the teacher's go.mod) to direct
// use. The returned stop func closes the watcher; call it once.
func Watch(path string, onChange func(Options)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		if strings.Contains(err.Error(), "no such file") {
			return func() { w.Close() }, nil
		}
		return nil, fmt.Errorf("config: watching %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				o, err := Load(path)
				if err != nil {
					continue
				}
				onChange(o)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() {
		w.Close()
		<-done
	}, nil
}
