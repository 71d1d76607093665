package level

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/interact"
	"github.com/san-kum/greyspace/internal/space"
)

// Level is the serialized form of a space: field, ship placement and
// interactables. Potential holds normalized cell values, one slice per row;
// when it is empty every cell is set to Fill.
type Level struct {
	Name      string       `yaml:"name,omitempty" json:"name,omitempty"`
	Width     int          `yaml:"width" json:"width"`
	Height    int          `yaml:"height" json:"height"`
	Gravity   float64      `yaml:"gravity" json:"gravity"`
	Border    float64      `yaml:"border,omitempty" json:"border,omitempty"`
	Fill      float64      `yaml:"fill,omitempty" json:"fill,omitempty"`
	Potential [][]float64  `yaml:"potential,omitempty" json:"potential,omitempty"`
	Ship      *ShipSpec    `yaml:"ship,omitempty" json:"ship,omitempty"`
	Exits     []ExitSpec   `yaml:"exits,omitempty" json:"exits,omitempty"`
	Fuels     []FuelSpec   `yaml:"fuels,omitempty" json:"fuels,omitempty"`
	Bombs     []BombSpec   `yaml:"bombs,omitempty" json:"bombs,omitempty"`
	Planets   []PlanetSpec `yaml:"planets,omitempty" json:"planets,omitempty"`
}

type ShipSpec struct {
	Pos              dynamo.Vec2 `yaml:"pos" json:"pos"`
	Vel              dynamo.Vec2 `yaml:"vel,omitempty" json:"vel"`
	Size             float64     `yaml:"size" json:"size"`
	ShipMass         float64     `yaml:"ship_mass" json:"ship_mass"`
	ParticleMass     float64     `yaml:"particle_mass" json:"particle_mass"`
	ParticleCount    int         `yaml:"particle_count" json:"particle_count"`
	ParticleVelocity float64     `yaml:"particle_velocity" json:"particle_velocity"`
}

type ExitSpec struct {
	Pos  dynamo.Vec2 `yaml:"pos" json:"pos"`
	Size float64     `yaml:"size" json:"size"`
}

type FuelSpec struct {
	Pos       dynamo.Vec2 `yaml:"pos" json:"pos"`
	Size      float64     `yaml:"size" json:"size"`
	Particles int         `yaml:"particles" json:"particles"`
	Boost     float64     `yaml:"boost,omitempty" json:"boost,omitempty"`
}

type BombSpec struct {
	Pos      dynamo.Vec2 `yaml:"pos" json:"pos"`
	Size     float64     `yaml:"size" json:"size"`
	Range    float64     `yaml:"range" json:"range"`
	Polarity string      `yaml:"polarity" json:"polarity"`
}

type PlanetSpec struct {
	Pos      dynamo.Vec2 `yaml:"pos" json:"pos"`
	Size     float64     `yaml:"size" json:"size"`
	Exponent float64     `yaml:"exponent" json:"exponent"`
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", dynamo.ErrInvalidDimensions, l.Width, l.Height)
	}
	if !dynamo.Finite(l.Gravity) {
		return invalid("gravity must be finite, got %v", l.Gravity)
	}
	if !dynamo.Finite(l.Border) || l.Border < 0 {
		return invalid("border must be finite and not negative, got %v", l.Border)
	}
	if !dynamo.Finite(l.Fill) {
		return invalid("fill must be finite, got %v", l.Fill)
	}
	for y, row := range l.Potential {
		for x, v := range row {
			if !dynamo.Finite(v) {
				return invalid("potential at (%d,%d) must be finite, got %v", x, y, v)
			}
		}
	}
	if sh := l.Ship; sh != nil {
		if !sh.Pos.IsValid() || !sh.Vel.IsValid() {
			return invalid("ship position and velocity must be finite")
		}
		if !(sh.Size > 0) || !dynamo.Finite(sh.Size) {
			return invalid("ship size must be positive, got %v", sh.Size)
		}
		if !(sh.ShipMass > 0) || !dynamo.Finite(sh.ShipMass) {
			return invalid("ship mass must be positive, got %v", sh.ShipMass)
		}
		if sh.ParticleCount < 0 || !(sh.ParticleMass >= 0) || !dynamo.Finite(sh.ParticleMass) {
			return invalid("ship particle budget must not be negative")
		}
		if sh.ParticleCount > 0 && sh.ParticleMass == 0 {
			return invalid("particle mass must be positive with %d particles", sh.ParticleCount)
		}
		if !dynamo.Finite(sh.ParticleVelocity) {
			return invalid("particle velocity must be finite, got %v", sh.ParticleVelocity)
		}
	}
	for i, e := range l.Exits {
		if err := checkItem(e.Pos, e.Size); err != nil {
			return fmt.Errorf("exit %d: %w", i, err)
		}
	}
	for i, fu := range l.Fuels {
		if err := checkItem(fu.Pos, fu.Size); err != nil {
			return fmt.Errorf("fuel %d: %w", i, err)
		}
		if fu.Particles < 0 || !dynamo.Finite(fu.Boost) {
			return invalid("fuel %d: particles must not be negative and boost must be finite", i)
		}
		if fu.Particles > 0 && l.Ship != nil && l.Ship.ParticleMass == 0 {
			return invalid("fuel %d: grants particles to a ship with massless particles", i)
		}
	}
	for i, b := range l.Bombs {
		if err := checkItem(b.Pos, b.Size); err != nil {
			return fmt.Errorf("bomb %d: %w", i, err)
		}
		if !(b.Range > 0) || !dynamo.Finite(b.Range) {
			return invalid("bomb %d: range must be positive, got %v", i, b.Range)
		}
		if _, err := interact.ParsePolarity(b.Polarity); err != nil {
			return fmt.Errorf("bomb %d: %w", i, err)
		}
	}
	for i, p := range l.Planets {
		if err := checkItem(p.Pos, p.Size); err != nil {
			return fmt.Errorf("planet %d: %w", i, err)
		}
		if p.Size == 0 {
			return invalid("planet %d: size must be positive", i)
		}
		if !dynamo.Finite(p.Exponent) {
			return invalid("planet %d: exponent must be finite, got %v", i, p.Exponent)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", dynamo.ErrInvalidLevel, fmt.Sprintf(format, args...))
}

func checkItem(pos dynamo.Vec2, size float64) error {
	if !pos.IsValid() {
		return invalid("position must be finite, got %v", pos)
	}
	if !(size >= 0) || !dynamo.Finite(size) {
		return invalid("size must not be negative, got %v", size)
	}
	return nil
}

// Build creates a space from the level. opts.Border is taken from the level
// when the level sets one.
func Build(l *Level, opts space.Options) (*space.Space, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l.Border > 0 {
		opts.Border = l.Border
	}
	s, err := space.New(l.Width, l.Height, l.Gravity, opts)
	if err != nil {
		return nil, err
	}

	if len(l.Potential) > 0 {
		if err := s.Field.SetRows(l.Potential); err != nil {
			return nil, fmt.Errorf("potential: %w", err)
		}
	} else {
		s.Field.Fill(l.Fill)
	}

	for _, p := range l.Planets {
		s.AddPlanet(p.Pos, p.Size, p.Exponent)
	}
	for _, e := range l.Exits {
		s.AddExit(e.Pos, e.Size)
	}
	for _, fu := range l.Fuels {
		s.AddFuel(fu.Pos, fu.Size, fu.Particles, fu.Boost)
	}
	for _, b := range l.Bombs {
		pol, _ := interact.ParsePolarity(b.Polarity)
		s.AddBomb(b.Pos, b.Size, b.Range, pol)
	}

	if sh := l.Ship; sh != nil {
		ship := s.SetupShip(sh.Pos, sh.Size, body.Drive{
			ShipMass:         sh.ShipMass,
			ParticleMass:     sh.ParticleMass,
			ParticleCount:    sh.ParticleCount,
			ParticleVelocity: sh.ParticleVelocity,
		})
		if !sh.Vel.IsZero() {
			ship.Vel = sh.Vel
			ship.RefreshEnergy(s.Field)
		}
	}
	return s, nil
}

// FromSpace captures the current state of s as a level. Stored cells are
// always written out, so Fill is left zero.
func FromSpace(s *space.Space) *Level {
	l := &Level{
		Width:     s.Field.Width,
		Height:    s.Field.Height,
		Gravity:   s.Field.Gravity,
		Border:    s.Field.Border,
		Potential: s.Field.Rows(),
	}
	if sh := s.Ship; sh != nil {
		l.Ship = &ShipSpec{
			Pos:              sh.Pos,
			Vel:              sh.Vel,
			Size:             sh.Size,
			ShipMass:         sh.ShipMass,
			ParticleMass:     sh.ParticleMass,
			ParticleCount:    sh.ParticleCount,
			ParticleVelocity: sh.ParticleVelocity,
		}
	}
	for _, e := range s.Exits {
		l.Exits = append(l.Exits, ExitSpec{Pos: e.Pos, Size: e.Size})
	}
	for _, fu := range s.Fuels {
		l.Fuels = append(l.Fuels, FuelSpec{Pos: fu.Pos, Size: fu.Size, Particles: fu.Particles, Boost: fu.Boost})
	}
	for _, b := range s.Bombs {
		l.Bombs = append(l.Bombs, BombSpec{Pos: b.Pos, Size: b.Size, Range: b.Range, Polarity: b.Polarity.String()})
	}
	for _, p := range s.Planets {
		l.Planets = append(l.Planets, PlanetSpec{Pos: p.Pos, Size: p.Size, Exponent: p.Exponent})
	}
	return l
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a level file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := &Level{}
	if isJSON(path) {
		err = json.Unmarshal(data, l)
	} else {
		err = yaml.Unmarshal(data, l)
	}
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, l.Validate()
}

func Save(path string, l *Level) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(l, "", "  ")
	} else {
		data, err = yaml.Marshal(l)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the built-in level called name, or loads name as a file
// path when no preset matches.
func Resolve(name string) (*Level, error) {
	if l := Preset(name); l != nil {
		return l, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownLevel, name)
	}
	return Load(name)
}
