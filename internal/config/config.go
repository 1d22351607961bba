package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"glyphray/internal/mathutil"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Raycast  RaycastConfig  `yaml:"raycast"`
	Shading  ShadingConfig  `yaml:"shading"`
	Skybox   SkyboxConfig   `yaml:"skybox"`
	Sprites  SpriteConfig   `yaml:"sprites"`
	Entities EntityConfig   `yaml:"entities"`
	Engine   EngineConfig   `yaml:"engine"`
	Network  NetworkConfig  `yaml:"network"`
	Assets   AssetConfig    `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth     int    `yaml:"screen_width"`
	ScreenHeight    int    `yaml:"screen_height"`
	WindowTitle     string `yaml:"window_title"`
	CellWidth       int    `yaml:"cell_width"`
	CellHeight      int    `yaml:"cell_height"`
	Presenter       string `yaml:"presenter"`
	WideScreenWidth int    `yaml:"wide_screen_width"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"`
	RenderDepth float64 `yaml:"render_depth"`
	LookLimit   float64 `yaml:"look_limit"`
	FOVSplit    float64 `yaml:"fov_split"`
}

type MovementConfig struct {
	MoveFactor      float64 `yaml:"move_factor"`
	RotationSpeed   float64 `yaml:"rotation_speed"`
	StrideBias      float64 `yaml:"stride_bias"`
	LookUpInput     float64 `yaml:"look_up_input"`
	LookDownInput   float64 `yaml:"look_down_input"`
	KeyLookFactor   float64 `yaml:"key_look_factor"`
	MouseLookFactor float64 `yaml:"mouse_look_factor"`
	TouchLookFactor float64 `yaml:"touch_look_factor"`
	HeadbobStep     float64 `yaml:"headbob_step"`
	HeadbobDecay    float64 `yaml:"headbob_decay"`
	HeadbobPeriod   float64 `yaml:"headbob_period"`
}

type RaycastConfig struct {
	Grain             float64 `yaml:"grain"`
	BoundaryThreshold float64 `yaml:"boundary_threshold"`
	Parallel          bool    `yaml:"parallel"`
}

type ShadingConfig struct {
	RenderMode   int       `yaml:"render_mode"`
	WallDivisors []float64 `yaml:"wall_divisors"`
	GateDivisor  float64   `yaml:"gate_divisor"`
}

type SkyboxConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Moon     MoonConfig     `yaml:"moon"`
	Galaxies []GalaxyConfig `yaml:"galaxies"`
	Nebulas  []NebulaConfig `yaml:"nebulas"`
}

type MoonConfig struct {
	Angle float64 `yaml:"angle"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
}

type GalaxyConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Size      float64 `yaml:"size"`
	Core      string  `yaml:"core"`
	Arm       string  `yaml:"arm"`
	Outer     string  `yaml:"outer"`
	Arms      float64 `yaml:"arms"`
	Tightness float64 `yaml:"tightness"`
}

type NebulaConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Size   float64 `yaml:"size"`
	Dense  string  `yaml:"dense"`
	Medium string  `yaml:"medium"`
	Sparse string  `yaml:"sparse"`
}

type SpriteConfig struct {
	VerticalDown       Table   `yaml:"vertical_down"`
	VerticalUp         Table   `yaml:"vertical_up"`
	HorizontalStandard Table   `yaml:"horizontal_standard"`
	HorizontalDown     Table   `yaml:"horizontal_down"`
	HorizontalUp       Table   `yaml:"horizontal_up"`
	LookThreshold      float64 `yaml:"look_threshold"`
	MinDistance        float64 `yaml:"min_distance"`
	CloseRange         float64 `yaml:"close_range"`
	DistanceCorrection float64 `yaml:"distance_correction"`
}

type EntityConfig struct {
	DefaultSpeed     float64 `yaml:"default_speed"`
	ProbeRadius      float64 `yaml:"probe_radius"`
	Pushback         float64 `yaml:"pushback"`
	HeadingJitter    float64 `yaml:"heading_jitter"`
	StuckLimit       int     `yaml:"stuck_limit"`
	EscapeHeading    float64 `yaml:"escape_heading"`
	EscapeDistance   float64 `yaml:"escape_distance"`
	TurnAwayDistance float64 `yaml:"turn_away_distance"`
	BlockDistance    float64 `yaml:"block_distance"`
	PushStrength     float64 `yaml:"push_strength"`
	SpawnDensity     float64 `yaml:"spawn_density"`
	Seed             int64   `yaml:"seed"`
}

type EngineConfig struct {
	TickMs             int `yaml:"tick_ms"`
	AnimationFrames    int `yaml:"animation_frames"`
	MetricsIntervalSec int `yaml:"metrics_interval_sec"`
	Workers            int `yaml:"workers"`
}

type NetworkConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	PlayerName string `yaml:"player_name"`
	SendBuffer int    `yaml:"send_buffer"`
}

type AssetConfig struct {
	Textures string `yaml:"textures"`
	Levels   string `yaml:"levels"`
	Level    string `yaml:"level"`
}

// Table is a breakpoint table written in YAML as a list of [threshold, value] pairs.
type Table []mathutil.Breakpoint

// UnmarshalYAML decodes [[threshold, value], ...].
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	var pairs [][]float64
	if err := node.Decode(&pairs); err != nil {
		return err
	}
	table := make(Table, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("breakpoint %d: expected [threshold, value], got %d numbers", i, len(pair))
		}
		if i > 0 && pair[0] < table[i-1].At {
			return fmt.Errorf("breakpoint %d: thresholds must ascend", i)
		}
		table = append(table, mathutil.Breakpoint{At: pair[0], Value: pair[1]})
	}
	*t = table
	return nil
}

// Curve returns the table as an interpolating lookup.
func (t Table) Curve() mathutil.Piecewise {
	return mathutil.Piecewise(t)
}

// Global config instance
var GlobalConfig *Config

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() *Config {
	inf := math.Inf(1)
	flat := Table{{At: 1, Value: 0}, {At: 3, Value: 0.01}, {At: 6, Value: 0.005}, {At: 9, Value: 0.005}, {At: 14, Value: 0.005}, {At: inf, Value: 0.005}}

	return &Config{
		Display: DisplayConfig{
			ScreenWidth:     120,
			ScreenHeight:    40,
			WindowTitle:     "glyphray",
			CellWidth:       8,
			CellHeight:      16,
			Presenter:       "terminal",
			WideScreenWidth: 500,
		},
		Camera: CameraConfig{
			FieldOfView: math.Pi / 2.25,
			RenderDepth: 32,
			LookLimit:   12,
			FOVSplit:    1.8,
		},
		Movement: MovementConfig{
			MoveFactor:      0.1,
			RotationSpeed:   0.05,
			StrideBias:      5.0 * 0.0051,
			LookUpInput:     -12,
			LookDownInput:   24,
			KeyLookFactor:   0.08,
			MouseLookFactor: 0.05,
			TouchLookFactor: 0.1,
			HeadbobStep:     0.2,
			HeadbobDecay:    0.4,
			HeadbobPeriod:   2,
		},
		Raycast: RaycastConfig{
			Grain:             0.05,
			BoundaryThreshold: 0.01,
			Parallel:          true,
		},
		Shading: ShadingConfig{
			RenderMode:   2,
			WallDivisors: []float64{2.5, 2, 1, 0.5},
			GateDivisor:  2.4,
		},
		Skybox: SkyboxConfig{
			Enabled: true,
			Moon:    MoonConfig{Angle: math.Pi, Y: 0.05, Size: 0.42},
			Galaxies: []GalaxyConfig{
				{X: 0.25, Y: 0.08, Size: 1.18, Core: "*", Arm: "+", Outer: "'", Arms: 3, Tightness: 0.8},
				{X: 0.75, Y: 0.03, Size: 0.52, Core: "#", Arm: "=", Outer: ".", Arms: 2, Tightness: 0.6},
			},
			Nebulas: []NebulaConfig{
				{X: 0.25, Y: 0.15, Size: 4.18, Dense: "~", Medium: "°", Sparse: "·"},
				{X: 0.75, Y: 0.17, Size: 2.74, Dense: "^", Medium: "\"", Sparse: "`"},
			},
		},
		Sprites: SpriteConfig{
			VerticalDown:       Table{{At: 1, Value: -0.55}, {At: 3, Value: -1.8}, {At: 6, Value: -2}, {At: 10, Value: -1.5}, {At: inf, Value: 0}},
			VerticalUp:         Table{{At: 2, Value: 0}, {At: 5, Value: -0.4}, {At: 9, Value: -0.6}, {At: inf, Value: -0.75}},
			HorizontalStandard: flat,
			HorizontalDown:     append(Table(nil), flat...),
			HorizontalUp:       append(Table(nil), flat...),
			LookThreshold:      0.15,
			MinDistance:        0.1,
			CloseRange:         0.4,
			DistanceCorrection: 0.01,
		},
		Entities: EntityConfig{
			DefaultSpeed:     0.03,
			ProbeRadius:      0.85,
			Pushback:         3,
			HeadingJitter:    0.1,
			StuckLimit:       10,
			EscapeHeading:    0.5,
			EscapeDistance:   0.5,
			TurnAwayDistance: 1.2,
			BlockDistance:    0.4,
			PushStrength:     0.02,
			SpawnDensity:     15,
		},
		Engine: EngineConfig{
			TickMs:          33,
			AnimationFrames: 15,
		},
		Network: NetworkConfig{
			URL:        "ws://localhost:8080/ws",
			PlayerName: "player",
			SendBuffer: 256,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate checks the values the render core divides by or indexes with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size must be positive, got %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 2*math.Pi:
		return fmt.Errorf("%w: field_of_view must be in (0, 2π)", ErrInvalidConfig)
	case c.Camera.RenderDepth <= 0:
		return fmt.Errorf("%w: render_depth must be positive", ErrInvalidConfig)
	case c.Camera.LookLimit <= 0:
		return fmt.Errorf("%w: look_limit must be positive", ErrInvalidConfig)
	case c.Camera.FOVSplit == 0:
		return fmt.Errorf("%w: fov_split must not be zero", ErrInvalidConfig)
	case c.Raycast.Grain <= 0:
		return fmt.Errorf("%w: grain must be positive", ErrInvalidConfig)
	case len(c.Shading.WallDivisors) != 4:
		return fmt.Errorf("%w: wall_divisors needs 4 entries, got %d", ErrInvalidConfig, len(c.Shading.WallDivisors))
	case c.Shading.RenderMode < 0 || c.Shading.RenderMode > 2:
		return fmt.Errorf("%w: render_mode must be 0, 1 or 2", ErrInvalidConfig)
	case c.Engine.TickMs <= 0:
		return fmt.Errorf("%w: tick_ms must be positive", ErrInvalidConfig)
	case c.Movement.HeadbobPeriod <= 0:
		return fmt.Errorf("%w: headbob_period must be positive", ErrInvalidConfig)
	}
	for i, d := range c.Shading.WallDivisors {
		if d <= 0 {
			return fmt.Errorf("%w: wall_divisors[%d] must be positive", ErrInvalidConfig, i)
		}
		if i > 0 && d >= c.Shading.WallDivisors[i-1] {
			return fmt.Errorf("%w: wall_divisors must strictly descend, got %v", ErrInvalidConfig, c.Shading.WallDivisors)
		}
	}
	return nil
}

// Helper methods for common calculations

// GetScreenWidth returns the frame width in glyph columns
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

// GetScreenHeight returns the frame height in glyph rows
func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetWindowSize returns the window presenter's pixel size
func (c *Config) GetWindowSize() (int, int) {
	return c.Display.ScreenWidth * c.Display.CellWidth, c.Display.ScreenHeight * c.Display.CellHeight
}

// GetLookLimit returns the symmetric look offset limit, shrunk by 10% on wide screens
func (c *Config) GetLookLimit() float64 {
	if c.Display.ScreenWidth > c.Display.WideScreenWidth {
		return c.Camera.LookLimit * 0.9
	}
	return c.Camera.LookLimit
}
