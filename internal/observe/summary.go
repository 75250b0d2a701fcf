// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Collector is an in-process meter provider whose data can be read back at
// any time, used by the CLI to print a metrics summary at exit.
type Collector struct {
	Provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
}

// NewCollector returns a meter provider backed by a manual reader.
func NewCollector() *Collector {
	reader := sdkmetric.NewManualReader()
	return &Collector{
		Provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader:   reader,
	}
}

// Shutdown flushes and stops the provider.
func (c *Collector) Shutdown(ctx context.Context) error {
	return c.Provider.Shutdown(ctx)
}

// Point is one aggregated series of an instrument.
type Point struct {
	Name  string
	Attrs string
	Count uint64  // histogram observations, or 0 for counters
	Sum   float64 // histogram sum or counter value
	Unit  string
}

func (p Point) String() string {
	name := p.Name
	if p.Attrs != "" {
		name += "{" + p.Attrs + "}"
	}
	if p.Count > 0 {
		return fmt.Sprintf("%s count=%d sum=%.3f%s avg=%.3f%s",
			name, p.Count, p.Sum, p.Unit, p.Sum/float64(p.Count), p.Unit)
	}
	return fmt.Sprintf("%s value=%g%s", name, p.Sum, p.Unit)
}

// Summary collects the current state of every instrument, sorted by name.
func (c *Collector) Summary(ctx context.Context) ([]Point, error) {
	var rm metricdata.ResourceMetrics
	if err := c.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	var points []Point
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{
						Name: m.Name, Attrs: attrString(dp.Attributes),
						Count: dp.Count, Sum: dp.Sum, Unit: m.Unit,
					})
				}
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{
						Name: m.Name, Attrs: attrString(dp.Attributes),
						Sum: float64(dp.Value), Unit: m.Unit,
					})
				}
			}
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Name != points[j].Name {
			return points[i].Name < points[j].Name
		}
		return points[i].Attrs < points[j].Attrs
	})
	return points, nil
}

func attrString(set attribute.Set) string {
	var s string
	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		if s != "" {
			s += ","
		}
		s += string(kv.Key) + "=" + kv.Value.Emit()
	}
	return s
}
