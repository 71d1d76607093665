package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/san-kum/greyspace/internal/config"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/space"
)

// FieldView is the potential at every grid point, sources included.
type FieldView struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Values [][]float64 `json:"values"`
}

// Server runs one space and streams it to connected renderers. The space
// is only touched from the Run goroutine.
type Server struct {
	hub  *Hub
	lvl  *level.Level
	cfg  *config.Config
	opts space.Options
	log  *slog.Logger

	sp    *space.Space
	field atomic.Pointer[[]byte]
}

func NewServer(lvl *level.Level, cfg *config.Config, opts space.Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	sp, err := level.Build(lvl, opts)
	if err != nil {
		return nil, err
	}
	s := &Server{
		hub:  NewHub(opts.Logger),
		lvl:  lvl,
		cfg:  cfg,
		opts: opts,
		log:  opts.Logger,
		sp:   sp,
	}
	s.publishField()
	return s, nil
}

// Handler serves the websocket at /ws and the level document at /level.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		var greeting []byte
		if f := s.field.Load(); f != nil {
			greeting = *f
		}
		ServeWs(ctx, s.hub, w, r, greeting)
	})
	mux.HandleFunc("/level", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.lvl); err != nil {
			s.log.Warn("level encode failed", "err", err)
		}
	})
	return mux
}

// Run drives the hub and the simulation at the configured frame rate until
// ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(max(s.cfg.FPS, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				return err
			}
		}
	}
}

// Tick applies queued commands, advances one frame and broadcasts it.
func (s *Server) Tick() error {
	fire, angle := false, 0.0
	for drained := false; !drained; {
		select {
		case cmd := <-s.hub.Commands():
			switch cmd.Type {
			case CmdFire:
				fire, angle = true, cmd.Angle
			case CmdRestart:
				if err := s.restart(); err != nil {
					return err
				}
				fire = false
			default:
				s.log.Debug("unknown command", "type", cmd.Type)
			}
		default:
			drained = true
		}
	}

	if _, err := s.sp.Update(s.cfg.Dt, s.cfg.SubSteps, fire, angle); err != nil {
		return err
	}
	if s.sp.HasPotentialUpdated() {
		s.publishField()
	}
	return s.hub.Broadcast(Message{Type: TypeSnapshot, Payload: s.sp.Snapshot()})
}

func (s *Server) restart() error {
	sp, err := level.Build(s.lvl, s.opts)
	if err != nil {
		return err
	}
	s.sp = sp
	s.log.Info("level restarted", "level", s.lvl.Name)
	s.publishField()
	return nil
}

// publishField samples the field, keeps it as the greeting for new clients
// and broadcasts it.
func (s *Server) publishField() {
	s.sp.ConsumePotentialUpdated()
	f := s.sp.Field
	view := FieldView{Width: f.Width, Height: f.Height, Values: make([][]float64, f.Height)}
	for y := range view.Values {
		view.Values[y] = make([]float64, f.Width)
		for x := range view.Values[y] {
			view.Values[y][x] = f.Potential(x, y)
		}
	}
	data, err := json.Marshal(Message{Type: TypeField, Payload: view})
	if err != nil {
		s.log.Warn("field encode failed", "err", err)
		return
	}
	s.field.Store(&data)
	select {
	case s.hub.broadcast <- data:
	default:
	}
}
