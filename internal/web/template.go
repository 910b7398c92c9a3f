package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/lamxuanhung/binary-sensor/internal/status"
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
	"bits": status.BitString,
	"mv": func(v uint16) string {
		if v == 0xFFFF {
			return "n/a"
		}
		return fmt.Sprintf("%d mV", v)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Binary Sensor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.bits { letter-spacing: 0.3em; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Binary Sensor</h1>

<h2>Inputs</h2>
<table>
<tr><th>Counter lines (7..0)</th><td class="bits">{{bits .CounterStates}}</td></tr>
<tr><th>Binary lines (7..0)</th><td class="bits">{{bits .BinaryStates}}</td></tr>
<tr><th>Last pass</th><td>{{if .LastPass}}{{.LastPass}}{{else}}NONE{{end}}</td></tr>
<tr><th>Ready</th><td>{{if .Seeded}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Counters</h2>
<table>
{{range $i, $c := .Counters}}<tr><th>Counter {{$i}}</th><td>{{$c}}</td></tr>
{{end}}</table>

<h2>Node</h2>
<table>
<tr><th>Supply voltage</th><td>{{mv .VoltageMV}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Wakes (timer / interrupt / quiet)</th><td>{{.Wakes.Timer}} / {{.Wakes.Interrupt}} / {{.Wakes.Quiet}}</td></tr>
<tr><th>Publish errors</th><td>{{.PublishErrors}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Base topic</th><td>{{.Config.BaseTopic}}</td></tr>
{{if .Config.ModbusTarget}}<tr><th>Modbus target</th><td>{{.Config.ModbusTarget}}</td></tr>
{{end}}</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
