package projection

import (
	"context"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	instrumentationName = "github.com/goto/siphon/core/projection"
	failOpenMetric      = "siphon.projection.fail_open"
)

// Projector drops the fields a preference set excludes.
// A projection that would erase every field of a non-empty record returns the record untouched instead.
type Projector struct {
	logger   log.Logger
	failOpen metric.Int64Counter
}

// NewProjector records fail-open events on meter, or on the global meter provider when meter is nil
func NewProjector(logger log.Logger, meter metric.Meter) *Projector {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	counter, err := meter.Int64Counter(failOpenMetric,
		metric.WithDescription("Records returned unfiltered because every field was excluded"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		logger.Warn(context.Background(), "failed to create fail-open counter", "error", err)
		counter = noop.Int64Counter{}
	}

	return &Projector{logger: logger, failOpen: counter}
}

// Project keeps every key of record that prefs does not explicitly exclude.
// The boolean is true when the original record was returned because nothing would have been kept.
func (p *Projector) Project(ctx context.Context, entity string, record domain.Record, prefs domain.FieldPreferenceSet) (domain.Record, bool) {
	projected := domain.NewRecord()
	for _, k := range record.Keys() {
		if !prefs.IsSelected(k) {
			continue
		}
		v, _ := record.Get(k)
		projected.Set(k, v)
	}

	if projected.Len() == 0 && record.Len() > 0 {
		p.logger.Warn(ctx, "all fields excluded by preferences, keeping the record unfiltered", "entity", entity, "fields", record.Len())
		p.failOpen.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
		return record, true
	}

	return projected, false
}

// ProjectAll projects every record and reports how many fell back to the unfiltered record
func (p *Projector) ProjectAll(ctx context.Context, entity string, records []domain.Record, prefs domain.FieldPreferenceSet) ([]domain.Record, int) {
	projected := make([]domain.Record, 0, len(records))
	fellBack := 0
	for _, r := range records {
		out, failOpen := p.Project(ctx, entity, r, prefs)
		if failOpen {
			fellBack++
		}
		projected = append(projected, out)
	}
	return projected, fellBack
}
