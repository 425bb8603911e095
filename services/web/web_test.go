//go:build !(rp2040 || rp2350)

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nodelink-go/coordinator"
	"nodelink-go/wire"
)

// loopCtrl answers every poll with the same frame and records writes.
type loopCtrl struct {
	frame  wire.Frame
	writes [][]byte
}

func (c *loopCtrl) Request(buf []byte) (int, error) {
	return copy(buf, c.frame.AppendTo(nil)), nil
}

func (c *loopCtrl) Write(p []byte) error {
	w := make([]byte, len(p))
	copy(w, p)
	c.writes = append(c.writes, w)
	return nil
}

func newTestService(t *testing.T) (*Service, *loopCtrl) {
	t.Helper()
	ctrl := &loopCtrl{frame: wire.Idle}
	node := coordinator.NewNode(ctrl, nil, nil, nil)
	node.Poller.Poll(0) // link up
	return New(node), ctrl
}

func TestSensorsJSON(t *testing.T) {
	svc, ctrl := newTestService(t)
	ctrl.frame = wire.EncodeEnv(wire.EnvReading{DeciCelsius: 215, Humidity: 40, Light: 512})
	svc.node.Poller.Poll(500)

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/sensors", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["temperature"] != 21.5 || got["humidity"] != float64(40) || got["light"] != float64(512) {
		t.Fatalf("sensors = %v", got)
	}
	if got["card"] != wire.NoCard || got["link"] != true {
		t.Fatalf("sensors = %v", got)
	}
}

func TestPlayEndpoint(t *testing.T) {
	svc, ctrl := newTestService(t)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/play?track=7", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if len(ctrl.writes) != 1 || string(ctrl.writes[0]) != string([]byte{'P', 7}) {
		t.Fatalf("writes = %v", ctrl.writes)
	}

	for _, url := range []string{"/api/play?track=999", "/api/play?track=0", "/api/play?track=-3", "/api/play", "/api/play?track=x"} {
		rec = httptest.NewRecorder()
		svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", url, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", url, rec.Code)
		}
	}
	if len(ctrl.writes) != 1 {
		t.Fatalf("rejected tracks must not reach the wire: %v", ctrl.writes)
	}
}

func TestVolumeEndpoints(t *testing.T) {
	svc, ctrl := newTestService(t)
	h := svc.Handler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/vol_up", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/vol_down", nil))
	if len(ctrl.writes) != 2 || ctrl.writes[0][0] != '+' || ctrl.writes[1][0] != '-' {
		t.Fatalf("writes = %v", ctrl.writes)
	}
}

// Offline commands return success to the panel; the link state tells the
// real story.
func TestPlayWhileOfflineStillNoContent(t *testing.T) {
	ctrl := &loopCtrl{}
	node := coordinator.NewNode(ctrl, nil, nil, nil)
	svc := New(node)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/play?track=1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if len(ctrl.writes) != 0 {
		t.Fatal("offline command must not hit the wire")
	}
}

func TestPanelRendersSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	body := rec.Body.String()
	for _, want := range []string{"Node Link", "online", wire.NoCard, "/api/vol_up"} {
		if !strings.Contains(body, want) {
			t.Fatalf("panel missing %q", want)
		}
	}
}

func TestLightEndpoint(t *testing.T) {
	svc, _ := newTestService(t)
	h := svc.Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/light?ch=both&mode=blink&interval_ms=100", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/light?ch=nope&mode=on", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad channel: status %d", rec.Code)
	}
}

func TestRestartDisabledByDefault(t *testing.T) {
	svc, _ := newTestService(t)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/restart", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rec.Code)
	}
}
