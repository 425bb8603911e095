//go:build !(rp2040 || rp2350)

// Package web is the coordinator's HTTP surface: a small control panel plus
// a JSON API over the telemetry snapshot and the command sender. It reads
// state, it never owns it; the scheduler tasks keep running whether or not
// anyone is watching.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"nodelink-go/coordinator"
	"nodelink-go/indicator"
	"nodelink-go/x/mathx"
	"nodelink-go/x/strconvx"
)

// Service serves the panel and API for one coordinator node.
type Service struct {
	node *coordinator.Node
	srv  *http.Server

	// Restart is invoked by POST /restart; the simulator wires a soft
	// reset, hardware builds a watchdog kick. Nil disables the endpoint.
	Restart func()
}

func New(node *coordinator.Node) *Service {
	return &Service{node: node}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest without a listener.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePanel)
	mux.HandleFunc("/api/sensors", s.handleSensors)
	mux.HandleFunc("/api/play", s.handlePlay)
	mux.HandleFunc("/api/vol_up", s.handleVolume((*coordinator.Sender).VolumeUp))
	mux.HandleFunc("/api/vol_down", s.handleVolume((*coordinator.Sender).VolumeDown))
	mux.HandleFunc("/api/light", s.handleLight)
	mux.HandleFunc("/restart", s.handleRestart)
	return mux
}

// Start serves on addr until ctx is cancelled.
func (s *Service) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.srv = &http.Server{Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			println("[web]", err.Error())
		}
	}()
	println("[web] listening on", ln.Addr().String())
	return nil
}

func (s *Service) handleSensors(w http.ResponseWriter, r *http.Request) {
	snap := s.node.State.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"temperature": snap.Temperature,
		"humidity":    snap.Humidity,
		"light":       snap.Light,
		"card":        snap.Card,
		"link":        snap.LinkOnline,
	})
}

func (s *Service) handlePlay(w http.ResponseWriter, r *http.Request) {
	n, err := strconvx.Atoi(r.URL.Query().Get("track"))
	if err != nil || n < 1 || n > 255 {
		http.Error(w, "bad track", http.StatusBadRequest)
		return
	}
	// Fire-and-forget: a command lost to an offline link is not an HTTP
	// error, the panel reflects link state separately.
	_ = s.node.Sender.PlayTrack(uint8(n))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleVolume(send func(*coordinator.Sender) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = send(s.node.Sender)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleLight drives the indicator directly: ?ch=primary|secondary|both and
// ?mode=on|off|blink (blink takes ?interval_ms, default 250).
func (s *Service) handleLight(w http.ResponseWriter, r *http.Request) {
	var ch indicator.Channel
	switch r.URL.Query().Get("ch") {
	case "", "primary":
		ch = indicator.Primary
	case "secondary":
		ch = indicator.Secondary
	case "both":
		ch = indicator.Both
	default:
		http.Error(w, "bad channel", http.StatusBadRequest)
		return
	}
	switch r.URL.Query().Get("mode") {
	case "on":
		s.node.Lights.SetSolid(ch, true)
	case "off":
		s.node.Lights.SetSolid(ch, false)
	case "blink":
		interval := 250
		if q := r.URL.Query().Get("interval_ms"); q != "" {
			if n, err := strconvx.Atoi(q); err == nil {
				interval = mathx.Clamp(n, 10, 60000)
			}
		}
		s.node.Lights.StartBlink(ch, uint32(interval))
	case "stop":
		s.node.Lights.Stop()
	default:
		http.Error(w, "bad mode", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || s.Restart == nil {
		http.Error(w, "not supported", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	go s.Restart()
}
