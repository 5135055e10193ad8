// Package config loads the read-only Settings snapshot the rest of
// the core consumes: network bind address, channel update rate,
// compression flags, verbosity, and the physics parameter block.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sbl8/forcegraph/errs"
	"github.com/sbl8/forcegraph/kernels"
)

// Settings is the snapshot handed to the registry and every session at
// startup. It is loaded once; nothing here is mutated in place and
// there is no reload path. Each session keeps the copy it was built
// with, so only the physics block can change while running, by
// replacing it through registry.SetParams.
type Settings struct {
	Network     NetworkSettings     `yaml:"network"`
	Streaming   StreamingSettings   `yaml:"streaming"`
	Logging     LoggingSettings     `yaml:"logging"`
	Physics     kernels.Params      `yaml:"-"`
	PhysicsYAML PhysicsYAML         `yaml:"physics"`
	Ingestion   IngestionSettings   `yaml:"ingestion"`
}

// NetworkSettings is the bind address and port for the channel
// upgrade endpoint.
type NetworkSettings struct {
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

// StreamingSettings controls the per-session binary update cadence
// and compression behavior.
type StreamingSettings struct {
	BinaryUpdateRateHz  float64 `yaml:"binaryUpdateRateHz"`
	CompressionEnabled  bool    `yaml:"compressionEnabled"`
	CompressionThreshold int    `yaml:"compressionThreshold"`
	ClientTimeoutSeconds int    `yaml:"clientTimeoutSeconds"`
}

// LoggingSettings maps directly onto glog verbosity (-v).
type LoggingSettings struct {
	Verbosity int `yaml:"verbosity"`
}

// IngestionSettings configures the content-repository adapter.
type IngestionSettings struct {
	MarkdownDir      string `yaml:"markdownDir"`
	MetadataPath     string `yaml:"metadataPath"`
	RefreshInterval  int    `yaml:"refreshIntervalSeconds"`
}

// PhysicsYAML is the YAML-facing mirror of kernels.Params — a
// separate type because kernels.Params intentionally carries no YAML
// tags (it is also built programmatically by tests and the driver).
type PhysicsYAML struct {
	IterationsPerTick    int     `yaml:"iterationsPerTick"`
	SpringStrength       float32 `yaml:"springStrength"`
	Repulsion            float32 `yaml:"repulsion"`
	Damping              float32 `yaml:"damping"`
	MaxRepulsionDistance float32 `yaml:"maxRepulsionDistance"`
	ViewportBounds       float32 `yaml:"viewportBounds"`
	MassScale            float32 `yaml:"massScale"`
	BoundaryDamping      float32 `yaml:"boundaryDamping"`
	EnableBounds         bool    `yaml:"enableBounds"`
	HardClampCoordinate  float32 `yaml:"hardClampCoordinate"`
	TimeStep             float32 `yaml:"timeStep"`
	Enabled              bool    `yaml:"enabled"`
}

func (p PhysicsYAML) toParams() kernels.Params {
	return kernels.Params{
		IterationsPerTick:    p.IterationsPerTick,
		SpringStrength:       p.SpringStrength,
		Repulsion:            p.Repulsion,
		Damping:              p.Damping,
		MaxRepulsionDistance: p.MaxRepulsionDistance,
		ViewportBounds:       p.ViewportBounds,
		MassScale:            p.MassScale,
		BoundaryDamping:      p.BoundaryDamping,
		EnableBounds:         p.EnableBounds,
		HardClampCoordinate:  p.HardClampCoordinate,
		TimeStep:             p.TimeStep,
		Enabled:              p.Enabled,
	}
}

// Load reads and validates a Settings snapshot from a YAML file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errs.NewConfigError("reading config %q: %v", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errs.NewConfigError("parsing config %q: %v", path, err)
	}
	s.Physics = s.PhysicsYAML.toParams()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate enforces the invariants a config must meet to be usable.
func (s Settings) Validate() error {
	if s.Network.Port <= 0 || s.Network.Port > 65535 {
		return errs.NewConfigError("network.port %d out of range", s.Network.Port)
	}
	if s.Streaming.BinaryUpdateRateHz <= 0 {
		return errs.NewConfigError("streaming.binaryUpdateRateHz must be positive, got %v", s.Streaming.BinaryUpdateRateHz)
	}
	if s.Streaming.CompressionThreshold < 0 {
		return errs.NewConfigError("streaming.compressionThreshold must be non-negative")
	}
	if s.Ingestion.MetadataPath == "" {
		return errs.NewConfigError("ingestion.metadataPath is required")
	}
	if s.Physics.TimeStep <= 0 {
		return errs.NewConfigError("physics.timeStep must be positive, got %v", s.Physics.TimeStep)
	}
	if s.Physics.ViewportBounds <= 0 {
		return errs.NewConfigError("physics.viewportBounds must be positive, got %v", s.Physics.ViewportBounds)
	}
	return nil
}

// Default returns a Settings value usable out of the box for local
// development and tests.
func Default() Settings {
	return Settings{
		Network:   NetworkSettings{BindAddress: "0.0.0.0", Port: 8080},
		Streaming: StreamingSettings{BinaryUpdateRateHz: 60, CompressionEnabled: true, CompressionThreshold: 100, ClientTimeoutSeconds: 30},
		Logging:   LoggingSettings{Verbosity: 0},
		Physics:   kernels.DefaultParams(),
		Ingestion: IngestionSettings{MarkdownDir: "./markdown", MetadataPath: "./metadata.json", RefreshInterval: 300},
	}
}
