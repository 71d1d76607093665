package sim

import (
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
)

// Script decides whether to fire on a frame and at what angle.
type Script func(frame int) (angle float64, fire bool)

// Observer is told about every completed frame.
type Observer interface {
	OnFrame(sp *space.Space, rec storage.FrameRecord)
}

type ObserverFunc func(sp *space.Space, rec storage.FrameRecord)

func (f ObserverFunc) OnFrame(sp *space.Space, rec storage.FrameRecord) { f(sp, rec) }

type Config struct {
	Frames   int
	Dt       float64
	SubSteps int
	// StopOnEnd ends the run on the frame the level is completed or lost.
	StopOnEnd bool
}

type Result struct {
	Frames    []storage.FrameRecord
	Metrics   map[string]float64
	Completed bool
	Lost      bool
}

// NoFire is a script that never fires.
func NoFire(int) (float64, bool) { return 0, false }
