package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/radio-clock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Radio Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Radio Clock</h1>

<h2>Radio</h2>
<table>
<tr><th>Playback</th><td class="{{if .Playing}}on{{else}}off{{end}}">{{if .Playing}}PLAYING{{else}}STOPPED{{end}}</td></tr>
<tr><th>Station</th><td>{{.Station}} of {{.StationCount}}</td></tr>
<tr><th>Track</th><td>{{.Track}}</td></tr>
<tr><th>Mode</th><td>{{.Mode}}{{if ne .Mode .Highlighted}} (highlight: {{.Highlighted}}){{end}}</td></tr>
</table>

<h2>Clock</h2>
<table>
<tr><th>Display Time</th><td>{{.TimeText}}</td></tr>
<tr><th>Offset</th><td>{{.OffsetSeconds}}s</td></tr>
<tr><th>Alarm</th><td class="{{if .AlarmEnabled}}on{{else}}off{{end}}">{{if .AlarmEnabled}}{{.AlarmTime}}{{else}}off{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Frames Drawn</th><td>{{.FramesDrawn}}</td></tr>
<tr><th>Stations File</th><td>{{.Config.StationsFile}}</td></tr>
<tr><th>Long Press</th><td>{{.Config.LongPressMs}}ms</td></tr>
<tr><th>Frame Interval</th><td>{{.Config.FrameMs}}ms</td></tr>
<tr><th>Scroll</th><td>{{.Config.ScrollMs}}ms</td></tr>
<tr><th>Update</th><td>{{.Config.UpdateMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
