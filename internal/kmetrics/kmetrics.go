package kmetrics

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/senutpal/paxossim/internal/kerror"
	"go.opencensus.io/metric/metricdata"
)

// Kmetric is one counter metric. It is exported as <name>_count (number of
// Add calls) and, unless CountOnly, <name>_sum (sum of added values). Each
// distinct combination of tag values is one TimeSequence.
type Kmetric struct {
	mu          sync.Mutex
	metricName  string
	description string
	tagNames    []string
	sequences   map[string]*TimeSequence
	startTime   time.Time
	countOnly   bool
}

// CreateKmetric builds a Kmetric and registers it with the default registry.
func CreateKmetric(name string, description string, tags []string) *Kmetric {
	km := NewKmetric(name, description, tags)
	GetKmetricsRegistry().RegisterKmetric(km)
	return km
}

func NewKmetric(name string, description string, tags []string) *Kmetric {
	return &Kmetric{
		metricName:  name,
		description: description,
		tagNames:    tags,
		sequences:   map[string]*TimeSequence{},
		startTime:   time.Now(),
	}
}

func (km *Kmetric) CountOnly() *Kmetric {
	km.countOnly = true
	return km
}

func (km *Kmetric) Name() string {
	return km.metricName
}

// GetTimeSequence takes tag values in the same order as the tag names.
func (km *Kmetric) GetTimeSequence(tags ...string) *TimeSequence {
	if len(tags) != len(km.tagNames) {
		panic(kerror.Create("InvalidTagValues", "number of tag values does not match tag name list").
			WithErrorCode(kerror.EC_INVALID_PARAMETER).
			With("metric", km.metricName).
			With("expectedLen", len(km.tagNames)).
			With("gotLen", len(tags)))
	}
	key := strings.Join(tags, "-")
	km.mu.Lock()
	defer km.mu.Unlock()
	if seq, ok := km.sequences[key]; ok {
		return seq
	}
	values := make([]metricdata.LabelValue, len(tags))
	for i, item := range tags {
		values[i] = metricdata.NewLabelValue(item)
	}
	seq := &TimeSequence{parent: km, labelValues: values}
	km.sequences[key] = seq
	return seq
}

func (km *Kmetric) descriptor(suffix string) metricdata.Descriptor {
	keys := make([]metricdata.LabelKey, len(km.tagNames))
	for i, tagName := range km.tagNames {
		keys[i] = metricdata.LabelKey{Key: tagName}
	}
	return metricdata.Descriptor{
		Name:        km.metricName + suffix,
		Description: km.description,
		Unit:        metricdata.UnitDimensionless,
		Type:        metricdata.TypeCumulativeInt64,
		LabelKeys:   keys,
	}
}

func (km *Kmetric) read(suffix string, pick func(*TimeSequence) int64) *metricdata.Metric {
	km.mu.Lock()
	defer km.mu.Unlock()
	now := time.Now()
	series := make([]*metricdata.TimeSeries, 0, len(km.sequences))
	for _, seq := range km.sequences {
		series = append(series, &metricdata.TimeSeries{
			LabelValues: seq.labelValues,
			Points:      []metricdata.Point{metricdata.NewInt64Point(now, pick(seq))},
			StartTime:   km.startTime,
		})
	}
	return &metricdata.Metric{
		Descriptor: km.descriptor(suffix),
		TimeSeries: series,
	}
}

func (km *Kmetric) ReadCount() *metricdata.Metric {
	return km.read("_count", func(seq *TimeSequence) int64 { return atomic.LoadInt64(&seq.count) })
}

func (km *Kmetric) ReadSum() *metricdata.Metric {
	return km.read("_sum", func(seq *TimeSequence) int64 { return atomic.LoadInt64(&seq.sum) })
}

// TimeSequence is one tag value combination of a Kmetric.
type TimeSequence struct {
	parent      *Kmetric
	labelValues []metricdata.LabelValue
	count       int64
	sum         int64
}

func (ts *TimeSequence) Add(val int64) {
	atomic.AddInt64(&ts.count, 1)
	atomic.AddInt64(&ts.sum, val)
}

func (ts *TimeSequence) Get() (count int64, sum int64) {
	return atomic.LoadInt64(&ts.count), atomic.LoadInt64(&ts.sum)
}
