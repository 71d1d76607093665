package metrics

import "github.com/san-kum/greyspace/internal/space"

// PeakParticles is the most particles alive in any frame.
type PeakParticles struct {
	peak int
}

func NewPeakParticles() *PeakParticles { return &PeakParticles{} }

func (p *PeakParticles) Name() string { return "particles_peak" }

func (p *PeakParticles) Observe(s *space.Space) {
	p.peak = max(p.peak, len(s.Particles))
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }
func (p *PeakParticles) Reset()         { p.peak = 0 }

// Shots counts particles ejected since the first observation.
type Shots struct {
	base  int
	shots int
	seen  bool
}

func NewShots() *Shots { return &Shots{} }

func (sh *Shots) Name() string { return "shots" }

func (sh *Shots) Observe(s *space.Space) {
	if !sh.seen {
		sh.base = s.Shots()
		sh.seen = true
	}
	sh.shots = s.Shots() - sh.base
}

func (sh *Shots) Value() float64 { return float64(sh.shots) }

func (sh *Shots) Reset() {
	sh.base, sh.shots, sh.seen = 0, 0, false
}
