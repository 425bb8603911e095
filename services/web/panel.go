//go:build !(rp2040 || rp2350)

package web

import (
	"net/http"

	"nodelink-go/x/fmtx"
)

// The panel is assembled by hand; no templating. It refreshes itself via
// /api/sensors so the page stays static.
const panelHead = `<!DOCTYPE html><html><head><title>Node Link</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body{font-family:sans-serif;margin:2em;max-width:30em}
.v{font-weight:bold}.off{color:#c00}.on{color:#080}
button{margin:0.2em;padding:0.5em 1em}
</style></head><body><h1>Node Link</h1>`

const panelScript = `<script>
async function poll(){
  const r = await fetch('/api/sensors'); const s = await r.json();
  document.getElementById('t').textContent = s.temperature.toFixed(1);
  document.getElementById('h').textContent = s.humidity;
  document.getElementById('l').textContent = s.light;
  document.getElementById('c').textContent = s.card;
  const link = document.getElementById('k');
  link.textContent = s.link ? 'online' : 'offline';
  link.className = 'v ' + (s.link ? 'on' : 'off');
}
setInterval(poll, 1000); poll();
function cmd(p){ fetch(p, {method:'GET'}); }
</script></body></html>`

func (s *Service) handlePanel(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := s.node.State.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, _ = w.Write([]byte(panelHead))
	_, _ = fmtx.Fprintf(w, `<p>Link: <span id="k" class="v">%s</span></p>`, linkWord(snap.LinkOnline))
	_, _ = fmtx.Fprintf(w, `<p>Temperature: <span id="t" class="v">%s</span> &deg;C</p>`, fmtx.Sprintf("%v", snap.Temperature))
	_, _ = fmtx.Fprintf(w, `<p>Humidity: <span id="h" class="v">%d</span> %%</p>`, int(snap.Humidity))
	_, _ = fmtx.Fprintf(w, `<p>Light: <span id="l" class="v">%d</span></p>`, snap.Light)
	_, _ = fmtx.Fprintf(w, `<p>Card: <span id="c" class="v">%s</span></p>`, snap.Card)
	_, _ = w.Write([]byte(`<p>
<button onclick="cmd('/api/play?track=1')">Play 1</button>
<button onclick="cmd('/api/vol_up')">Vol +</button>
<button onclick="cmd('/api/vol_down')">Vol -</button>
</p><p>
<button onclick="cmd('/api/light?ch=both&mode=blink')">Blink</button>
<button onclick="cmd('/api/light?mode=stop')">Lights off</button>
</p>`))
	_, _ = w.Write([]byte(panelScript))
}

func linkWord(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}
