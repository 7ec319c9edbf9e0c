package ports

import "go.trai.ch/tilestream/internal/core/domain"

// ConfigLoader defines the interface for loading the streaming configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given path. A directory is
	// searched upwards for tilestream.yaml; a file is read directly.
	Load(path string) (*domain.Config, error)
}
