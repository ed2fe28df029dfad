package command

import (
	"context"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"
)

type Debug struct {
	sender  port.Sender
	started time.Time
	command string
}

func NewDebug(sender port.Sender, command string) *Debug {
	return &Debug{sender: sender, started: time.Now(), command: command}
}

func (d *Debug) GetCommand() string {
	return d.command
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
uptime: %s
compiled with %s for %s-%s`
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	l := newLogger(ctx, d.GetCommand(), message)

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	l.Info().Msg("handling request")

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	return send(ctx, d.sender, domain.ReplyTo(message, fmt.Sprintf(
		debugTemplate,
		data[2].Value.Uint64()/kb,
		runtime.NumGoroutine(),
		data[0].Value.Uint64()/kb,
		data[1].Value.Uint64()/kb,
		time.Since(d.started).Round(time.Second),
		runtime.Version(), goos, goarch,
	)))
}
