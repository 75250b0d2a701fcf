// SPDX-License-Identifier: EPL-2.0

package saundifix

import (
	"log/slog"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/internal/observe"
	"github.com/ik5/saundifix/render"
)

// DefaultSuffix is appended to the input name to form the output name.
const DefaultSuffix = "-saundifix"

// DefaultWorkers is the number of files ProcessBatch renders at once.
const DefaultWorkers = 2

// Options tune the file level entry points. The zero value is usable.
type Options struct {
	// Registry picks decoders by extension. Nil uses DefaultRegistry.
	Registry *audio.Registry
	// Renderer runs the effects chain. Nil builds one from Logger and
	// Metrics.
	Renderer *render.Renderer
	Logger   *slog.Logger
	Metrics  *observe.Metrics

	// Workers bounds ProcessBatch concurrency. Values below 1 use
	// DefaultWorkers.
	Workers int
	// Report fills JobResult.Report with levels of the rendered audio.
	Report bool
	// Progress receives batch events. It is called from worker goroutines
	// and must be safe for concurrent use.
	Progress func(Event)
}

func (o Options) registry() *audio.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return DefaultRegistry
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) renderer() *render.Renderer {
	if o.Renderer != nil {
		return o.Renderer
	}
	return render.New(render.WithLogger(o.logger()), render.WithMetrics(o.Metrics))
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return DefaultWorkers
	}
	return o.Workers
}

func (o Options) emit(e Event) {
	if o.Progress != nil {
		o.Progress(e)
	}
}
