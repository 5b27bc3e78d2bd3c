package kmetrics

import (
	"sort"
	"sync"

	"go.opencensus.io/metric/metricdata"
	"go.opencensus.io/metric/metricproducer"
)

// KmetricsRegistry implements metricproducer.Producer.
type KmetricsRegistry struct {
	mu   sync.Mutex
	dict map[string]*Kmetric
}

var _ metricproducer.Producer = (*KmetricsRegistry)(nil)

func NewKmetricsRegistry() *KmetricsRegistry {
	return &KmetricsRegistry{dict: map[string]*Kmetric{}}
}

var kmetricsRegistry = NewKmetricsRegistry()

func GetKmetricsRegistry() *KmetricsRegistry {
	return kmetricsRegistry
}

// RegisterKmetric replaces any metric already registered under the same name.
func (registry *KmetricsRegistry) RegisterKmetric(km *Kmetric) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.dict[km.metricName] = km
}

// Read returns all registered metrics sorted by name.
func (registry *KmetricsRegistry) Read() []*metricdata.Metric {
	registry.mu.Lock()
	metrics := make([]*Kmetric, 0, len(registry.dict))
	for _, km := range registry.dict {
		metrics = append(metrics, km)
	}
	registry.mu.Unlock()

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].metricName < metrics[j].metricName })
	list := []*metricdata.Metric{}
	for _, km := range metrics {
		list = append(list, km.ReadCount())
		if !km.countOnly {
			list = append(list, km.ReadSum())
		}
	}
	return list
}
