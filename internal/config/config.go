package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Defaults follow the reference demo tuning.
const (
	DefaultParticles     = 500
	DefaultRadius        = 0.1
	DefaultMass          = 1.0
	DefaultVelRange      = 0.2
	DefaultBaseStep      = 0.03
	DefaultFrameScale    = 133.33
	DefaultDamping       = 0.09
	DefaultMaxIterations = 30
	DefaultRestitution   = 0.2
	DefaultWallThickness = 1.0
)

type Config struct {
	Particles      int        `yaml:"particles"`
	Radius         float64    `yaml:"radius"`
	Mass           float64    `yaml:"mass"`
	VelRange       float64    `yaml:"vel_range"`
	WorldDims      [3]float64 `yaml:"world_dims"`
	WallThickness  float64    `yaml:"wall_thickness"`
	BaseStep       float64    `yaml:"base_step"`
	FrameScale     float64    `yaml:"frame_scale"`
	Damping        float64    `yaml:"damping"`
	AngularDamping float64    `yaml:"angular_damping"`
	MaxIterations  int        `yaml:"max_iterations"`
	Restitution    float64    `yaml:"restitution"`
	Gravity        [3]float64 `yaml:"gravity"`
	Seed           int64      `yaml:"seed"`
	Boxes          []BoxSpec  `yaml:"boxes"`
}

// BoxSpec describes one mobile box created at world init.
type BoxSpec struct {
	Center [3]float64 `yaml:"center"`
	Dims   [3]float64 `yaml:"dims"`
	Mass   float64    `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:      DefaultParticles,
		Radius:         DefaultRadius,
		Mass:           DefaultMass,
		VelRange:       DefaultVelRange,
		WorldDims:      [3]float64{10, 10, 10},
		WallThickness:  DefaultWallThickness,
		BaseStep:       DefaultBaseStep,
		FrameScale:     DefaultFrameScale,
		Damping:        DefaultDamping,
		AngularDamping: DefaultDamping,
		MaxIterations:  DefaultMaxIterations,
		Restitution:    DefaultRestitution,
		Gravity:        [3]float64{0, -0.9, 0},
		Boxes: []BoxSpec{
			{Center: [3]float64{0, 0, 2}, Dims: [3]float64{1, 1, 1}, Mass: 1.0},
			{Center: [3]float64{0, 0, 4}, Dims: [3]float64{1, 2, 1}, Mass: 1.0},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that would produce bodies the store
// refuses or a detector that cannot work.
func (c *Config) Validate() error {
	if c.Particles < 0 {
		return fmt.Errorf("particles must be >= 0, got %d", c.Particles)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %f", c.Radius)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %f", c.Mass)
	}
	if c.BaseStep <= 0 {
		return fmt.Errorf("base_step must be positive, got %f", c.BaseStep)
	}
	if c.FrameScale <= 0 {
		return fmt.Errorf("frame_scale must be positive, got %f", c.FrameScale)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0, 1], got %f", c.Restitution)
	}
	for i := 0; i < 3; i++ {
		if c.WorldDims[i] <= 0 {
			return fmt.Errorf("world_dims must be positive, got %v", c.WorldDims)
		}
	}
	for i, b := range c.Boxes {
		if b.Mass <= 0 {
			return fmt.Errorf("box %d: mass must be positive, got %f", i, b.Mass)
		}
		for j := 0; j < 3; j++ {
			if b.Dims[j] <= 0 {
				return fmt.Errorf("box %d: dims must be positive, got %v", i, b.Dims)
			}
		}
	}
	return nil
}

// Vec converts a yaml triple into a vector.
func Vec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}
