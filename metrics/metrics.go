// seehuhn.de/go/pdfview - annotation comment synchronization for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exposes Prometheus metrics for the comment and indicator
// layers.  Registration happens on import; a viewer that does not scrape
// them pays only the counter increments.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// syncTriggersTotal counts reconciliation requests by what caused
	// them: "data" (annotation or editor change), "immediate" (debounce
	// bypass) or "layout" (page structure settled).
	syncTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfview_sync_triggers_total",
			Help: "Reconciliation sync requests by trigger kind",
		},
		[]string{"kind"},
	)

	// syncPassesTotal counts reconciliation passes by outcome.  A
	// "stale" pass was superseded by a newer one before it could
	// commit.
	syncPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfview_sync_passes_total",
			Help: "Reconciliation passes by result",
		},
		[]string{"result"},
	)

	syncPassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdfview_sync_pass_duration_seconds",
			Help:    "Duration of completed reconciliation passes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	syncComments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pdfview_sync_comments",
			Help: "Comment summaries in the cache after the last pass",
		},
	)

	syncMergedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfview_sync_merged_total",
			Help: "Raw records merged away during deduplication",
		},
	)

	indicatorRebuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfview_indicator_rebuilds_total",
			Help: "Full indicator rebuilds",
		},
	)

	// indicatorsTotal counts rendered indicators by how they were
	// anchored: "editor", "annotation", "text" or "detached".
	indicatorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfview_indicators_total",
			Help: "Rendered note indicators by anchor kind",
		},
		[]string{"anchor"},
	)

	clustersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfview_indicator_clusters_total",
			Help: "Detached comment clusters formed",
		},
	)
)

func init() {
	prometheus.MustRegister(syncTriggersTotal)
	prometheus.MustRegister(syncPassesTotal)
	prometheus.MustRegister(syncPassDuration)
	prometheus.MustRegister(syncComments)
	prometheus.MustRegister(syncMergedTotal)
	prometheus.MustRegister(indicatorRebuildsTotal)
	prometheus.MustRegister(indicatorsTotal)
	prometheus.MustRegister(clustersTotal)
}

// RecordSyncTrigger counts one sync request.
func RecordSyncTrigger(kind string) {
	syncTriggersTotal.WithLabelValues(kind).Inc()
}

// RecordPassCompleted counts one committed pass, with its duration, the
// size of the resulting comment list, and how many raw records were merged
// away.
func RecordPassCompleted(seconds float64, comments, merged int) {
	syncPassesTotal.WithLabelValues("completed").Inc()
	syncPassDuration.Observe(seconds)
	syncComments.Set(float64(comments))
	syncMergedTotal.Add(float64(merged))
}

// RecordPassStale counts a pass abandoned because a newer pass superseded
// it.
func RecordPassStale() {
	syncPassesTotal.WithLabelValues("stale").Inc()
}

// RecordRebuild counts one indicator rebuild with its per-anchor-kind
// indicator counts and the number of detached clusters formed.
func RecordRebuild(editorAnchors, annotationAnchors, textAnchors, detached, clusters int) {
	indicatorRebuildsTotal.Inc()
	indicatorsTotal.WithLabelValues("editor").Add(float64(editorAnchors))
	indicatorsTotal.WithLabelValues("annotation").Add(float64(annotationAnchors))
	indicatorsTotal.WithLabelValues("text").Add(float64(textAnchors))
	indicatorsTotal.WithLabelValues("detached").Add(float64(detached))
	clustersTotal.Add(float64(clusters))
}
