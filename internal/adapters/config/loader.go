// Package config provides the configuration loader for tilestream.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	defaultFieldOfView  = 60.0
	defaultScreenHeight = 1080.0
	defaultScreenWidth  = 1920.0
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. A directory is searched upwards for
// tilestream.yaml; any other path is read as the configuration file itself.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var streamfile Streamfile
	if err := readAndUnmarshalYAML(configPath, &streamfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.buildConfig(&streamfile, filepath.Dir(configPath))
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	currentDir, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", path)
}

func (l *Loader) buildConfig(sf *Streamfile, configDir string) (*domain.Config, error) {
	if err := checkLimits(sf); err != nil {
		return nil, err
	}

	cfg := &domain.Config{
		Traversal:          domain.DefaultTraversalOptions(),
		CacheCapacity:      orDefault(sf.Cache.Capacity, domain.DefaultCacheCapacity),
		ContentConcurrency: orDefault(sf.Fetch.Concurrency, domain.DefaultContentConcurrency),
		RequestsPerFrame:   orDefault(sf.Fetch.RequestsPerFrame, domain.DefaultRequestsPerFrame),
		FetchTimeout:       domain.DefaultFetchTimeout,
	}

	source, err := resolveSource(sf.Source, configDir)
	if err != nil {
		return nil, err
	}
	cfg.Source = source

	if err := applyTraversal(&cfg.Traversal, sf.Traversal); err != nil {
		return nil, err
	}

	viewer, err := resolveViewer(sf.Viewer)
	if err != nil {
		return nil, err
	}
	cfg.Viewer = viewer

	if sf.Fetch.Timeout != "" {
		timeout, err := time.ParseDuration(sf.Fetch.Timeout)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "fetch.timeout")
		}
		if timeout < 0 {
			return nil, zerr.With(domain.ErrInvalidLimit, "field", "fetch.timeout")
		}
		cfg.FetchTimeout = timeout
	}

	if len(sf.Frames) == 0 {
		return nil, domain.ErrNoFrames
	}
	cfg.Frames = make([]domain.Camera, 0, len(sf.Frames))
	for i, f := range sf.Frames {
		cam := domain.Camera{
			Position:  domain.Vec3{X: f.Position[0], Y: f.Position[1], Z: f.Position[2]},
			Direction: domain.Vec3{X: f.Direction[0], Y: f.Direction[1], Z: f.Direction[2]},
		}
		if cam.Direction.Length() == 0 {
			l.Logger.Warn(fmt.Sprintf("frame %d has no view direction, looking down -Z", i))
			cam.Direction = domain.Vec3{Z: -1}
		}
		cfg.Frames = append(cfg.Frames, cam)
	}

	return cfg, nil
}

func resolveSource(dto SourceDTO, configDir string) (domain.SourceConfig, error) {
	if dto.BasePath == "" {
		return domain.SourceConfig{}, domain.ErrMissingSource
	}

	format := domain.Format(strings.ToLower(dto.Format))
	switch format {
	case "":
		format = domain.FormatTiles3D
	case domain.FormatTiles3D, domain.FormatI3S:
	default:
		return domain.SourceConfig{}, zerr.With(domain.ErrUnsupportedFormat, "format", dto.Format)
	}

	basePath := dto.BasePath
	if !isURL(basePath) && !filepath.IsAbs(basePath) {
		basePath = filepath.Join(configDir, basePath)
	}
	return domain.SourceConfig{BasePath: basePath, Format: format}, nil
}

func applyTraversal(opts *domain.TraversalOptions, dto TraversalDTO) error {
	if dto.MaximumScreenSpaceError != nil {
		if *dto.MaximumScreenSpaceError <= 0 {
			return zerr.With(domain.ErrInvalidScreenSpaceError, "value", *dto.MaximumScreenSpaceError)
		}
		opts.MaximumScreenSpaceError = *dto.MaximumScreenSpaceError
	}
	if dto.SkipLevelOfDetail != nil {
		opts.SkipLevelOfDetail = *dto.SkipLevelOfDetail
	}
	if dto.LoadSiblings != nil {
		opts.LoadSiblings = *dto.LoadSiblings
	}
	return nil
}

func resolveViewer(dto ViewerDTO) (domain.ViewerConfig, error) {
	fov := orDefault(dto.FieldOfView, defaultFieldOfView)
	height := orDefault(dto.ScreenHeight, defaultScreenHeight)
	width := orDefault(dto.ScreenWidth, defaultScreenWidth)
	if fov <= 0 || fov >= 180 || height <= 0 || width <= 0 || dto.Far < 0 {
		return domain.ViewerConfig{}, zerr.With(zerr.With(domain.ErrInvalidViewer, "fieldOfView", fov), "screenHeight", height)
	}
	return domain.ViewerConfig{
		FieldOfViewY: fov * math.Pi / 180,
		ScreenHeight: height,
		ScreenWidth:  width,
		Far:          dto.Far,
	}, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is resolved by the caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// checkLimits rejects negative limits. Zero selects the default.
func checkLimits(sf *Streamfile) error {
	limits := []struct {
		field string
		value int
	}{
		{"cache.capacity", sf.Cache.Capacity},
		{"fetch.concurrency", sf.Fetch.Concurrency},
		{"fetch.requestsPerFrame", sf.Fetch.RequestsPerFrame},
	}
	for _, l := range limits {
		if l.value < 0 {
			return zerr.With(zerr.With(domain.ErrInvalidLimit, "field", l.field), "value", l.value)
		}
	}
	return nil
}

func orDefault[T int | float64](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
