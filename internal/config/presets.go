package config

var Presets = map[string]*Config{
	"demo": DefaultConfig(),
	"dense": {
		Particles:      3000,
		Radius:         DefaultRadius,
		Mass:           DefaultMass,
		VelRange:       DefaultVelRange,
		WorldDims:      [3]float64{8, 8, 8},
		WallThickness:  DefaultWallThickness,
		BaseStep:       DefaultBaseStep,
		FrameScale:     DefaultFrameScale,
		Damping:        DefaultDamping,
		AngularDamping: DefaultDamping,
		MaxIterations:  DefaultMaxIterations,
		Restitution:    DefaultRestitution,
		Gravity:        [3]float64{0, -0.9, 0},
	},
	"boxes": {
		Particles:      0,
		Radius:         DefaultRadius,
		Mass:           DefaultMass,
		VelRange:       0,
		WorldDims:      [3]float64{10, 10, 10},
		WallThickness:  DefaultWallThickness,
		BaseStep:       DefaultBaseStep,
		FrameScale:     DefaultFrameScale,
		Damping:        DefaultDamping,
		AngularDamping: DefaultDamping,
		MaxIterations:  60,
		Restitution:    0.4,
		Gravity:        [3]float64{0, -0.9, 0},
		Boxes: []BoxSpec{
			{Center: [3]float64{0, 3, 0}, Dims: [3]float64{1, 1, 1}, Mass: 1.0},
			{Center: [3]float64{0.3, 1.5, 0}, Dims: [3]float64{1, 1, 1}, Mass: 1.0},
			{Center: [3]float64{-0.2, 0, 0.1}, Dims: [3]float64{1, 2, 1}, Mass: 2.0},
		},
	},
	"drift": {
		Particles:      200,
		Radius:         DefaultRadius,
		Mass:           DefaultMass,
		VelRange:       0.5,
		WorldDims:      [3]float64{6, 6, 6},
		WallThickness:  DefaultWallThickness,
		BaseStep:       DefaultBaseStep,
		FrameScale:     DefaultFrameScale,
		Damping:        0.02,
		AngularDamping: 0.02,
		MaxIterations:  DefaultMaxIterations,
		Restitution:    0.6,
		Gravity:        [3]float64{0, 0, 0},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
