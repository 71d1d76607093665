package space

import "github.com/san-kum/greyspace/internal/dynamo"

// Item kinds reported in snapshots.
const (
	KindFuel   = "fuel"
	KindExit   = "exit"
	KindBomb   = "bomb"
	KindPlanet = "planet"
)

type BodyView struct {
	Pos  dynamo.Vec2 `json:"pos"`
	Vel  dynamo.Vec2 `json:"vel"`
	Size float64     `json:"size"`
}

type ShipView struct {
	BodyView
	Mass          float64 `json:"mass"`
	Energy        float64 `json:"energy"`
	ParticleCount int     `json:"particle_count"`
	Frozen        bool    `json:"frozen"`
}

type ItemView struct {
	Kind string      `json:"kind"`
	Pos  dynamo.Vec2 `json:"pos"`
	Size float64     `json:"size"`
}

// Snapshot is a read-only copy of everything a renderer draws.
type Snapshot struct {
	Frame     int        `json:"frame"`
	Time      float64    `json:"time"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Ship      *ShipView  `json:"ship,omitempty"`
	Particles []BodyView `json:"particles"`
	Items     []ItemView `json:"items"`
	Completed bool       `json:"completed"`
	Lost      bool       `json:"lost"`
}

func (s *Space) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     s.frame,
		Time:      s.time,
		Width:     s.Field.Width,
		Height:    s.Field.Height,
		Particles: make([]BodyView, 0, len(s.Particles)),
		Items:     make([]ItemView, 0, len(s.Fuels)+len(s.Exits)+len(s.Bombs)+len(s.Planets)),
		Completed: s.IsLevelCompleted,
		Lost:      s.IsLevelLost,
	}
	if sh := s.Ship; sh != nil {
		snap.Ship = &ShipView{
			BodyView:      BodyView{Pos: sh.Pos, Vel: sh.Vel, Size: sh.Size},
			Mass:          sh.Mass,
			Energy:        sh.Energy,
			ParticleCount: sh.ParticleCount,
			Frozen:        sh.Frozen,
		}
	}
	for _, p := range s.Particles {
		snap.Particles = append(snap.Particles, BodyView{Pos: p.Pos, Vel: p.Vel, Size: p.Size})
	}
	for _, fu := range s.Fuels {
		snap.Items = append(snap.Items, ItemView{Kind: KindFuel, Pos: fu.Pos, Size: fu.Size})
	}
	for _, e := range s.Exits {
		snap.Items = append(snap.Items, ItemView{Kind: KindExit, Pos: e.Pos, Size: e.Size})
	}
	for _, b := range s.Bombs {
		snap.Items = append(snap.Items, ItemView{Kind: KindBomb, Pos: b.Pos, Size: b.Size})
	}
	for _, p := range s.Planets {
		snap.Items = append(snap.Items, ItemView{Kind: KindPlanet, Pos: p.Pos, Size: p.Size})
	}
	return snap
}
