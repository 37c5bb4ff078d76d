// Package settings reads and writes settings.yaml in the data directory.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

const FileName = "settings.yaml"

// Settings are process-level options; the bang Config lives in storage.
type Settings struct {
	Backend  domain.Backend
	Debug    bool
	Addr     string
	Fallback string
}

// Default provides sane defaults if settings.yaml is missing or partial.
func Default() Settings {
	return Settings{
		Backend:  domain.BackendSync,
		Debug:    false,
		Addr:     "127.0.0.1:7878",
		Fallback: "https://duckduckgo.com/?q=%s",
	}
}

type yamlSettings struct {
	Bangs struct {
		Storage struct {
			Backend string `yaml:"backend,omitempty"`
		} `yaml:"storage"`

		Log struct {
			Debug *bool `yaml:"debug,omitempty"`
		} `yaml:"log"`

		Serve struct {
			Addr     string `yaml:"addr,omitempty"`
			Fallback string `yaml:"fallback,omitempty"`
		} `yaml:"serve"`
	} `yaml:"bangs"`
}

// Load reads dir/settings.yaml and applies it on top of defaults.
// A missing file returns defaults with a KindNotFound error.
func Load(dir string) (Settings, error) {
	s := Default()

	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return s, &domain.OpError{
			Op:   "settings.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlSettings
	if err := yaml.Unmarshal(b, &y); err != nil {
		return s, &domain.OpError{
			Op:   "settings.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if strings.TrimSpace(y.Bangs.Storage.Backend) != "" {
		kind, err := domain.ParseBackend(y.Bangs.Storage.Backend)
		if err != nil {
			return Default(), &domain.OpError{
				Op:   "settings.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		s.Backend = kind
	}
	if y.Bangs.Log.Debug != nil {
		s.Debug = *y.Bangs.Log.Debug
	}
	if y.Bangs.Serve.Addr != "" {
		s.Addr = y.Bangs.Serve.Addr
	}
	if y.Bangs.Serve.Fallback != "" {
		s.Fallback = y.Bangs.Serve.Fallback
	}

	return s, nil
}

// Save writes s to dir/settings.yaml (tmp then rename).
func Save(dir string, s Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{Op: "settings.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	var y yamlSettings
	y.Bangs.Storage.Backend = string(s.Backend)
	debug := s.Debug
	y.Bangs.Log.Debug = &debug
	y.Bangs.Serve.Addr = s.Addr
	y.Bangs.Serve.Fallback = s.Fallback

	b, err := yaml.Marshal(&y)
	if err != nil {
		return &domain.OpError{Op: "settings.marshal", Kind: domain.KindExecution, Err: err}
	}

	path := filepath.Join(dir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{Op: "settings.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "settings.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// FileSelector persists the active backend in settings.yaml.
type FileSelector struct {
	Dir string
}

var _ ports.BackendSelector = FileSelector{}

func (f FileSelector) ActiveBackend() (domain.Backend, error) {
	s, err := Load(f.Dir)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return "", err
	}
	return s.Backend, nil
}

func (f FileSelector) SaveActiveBackend(kind domain.Backend) error {
	s, err := Load(f.Dir)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	s.Backend = kind
	return Save(f.Dir, s)
}
