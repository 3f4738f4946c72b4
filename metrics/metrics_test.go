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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.Gauge.GetValue()
}

func TestRecordSyncTrigger(t *testing.T) {
	syncTriggersTotal.Reset()

	RecordSyncTrigger("data")
	RecordSyncTrigger("data")
	RecordSyncTrigger("layout")
	RecordSyncTrigger("immediate")

	require.Equal(t, 2.0, counterValue(t, syncTriggersTotal.WithLabelValues("data")))
	require.Equal(t, 1.0, counterValue(t, syncTriggersTotal.WithLabelValues("layout")))
	require.Equal(t, 1.0, counterValue(t, syncTriggersTotal.WithLabelValues("immediate")))
}

func TestRecordPassCompleted(t *testing.T) {
	syncPassesTotal.Reset()
	mergedBefore := counterValue(t, syncMergedTotal)

	RecordPassCompleted(0.002, 7, 3)

	require.Equal(t, 1.0, counterValue(t, syncPassesTotal.WithLabelValues("completed")))
	require.Equal(t, 7.0, gaugeValue(t, syncComments))
	require.Equal(t, mergedBefore+3, counterValue(t, syncMergedTotal))

	// the gauge tracks the latest pass, not a running total
	RecordPassCompleted(0.004, 2, 0)
	require.Equal(t, 2.0, gaugeValue(t, syncComments))
	require.Equal(t, 2.0, counterValue(t, syncPassesTotal.WithLabelValues("completed")))

	// histogram recording must not panic; bucket contents are not
	// asserted here
	RecordPassCompleted(10, 0, 0)
}

func TestRecordPassStale(t *testing.T) {
	syncPassesTotal.Reset()

	RecordPassStale()
	RecordPassStale()

	require.Equal(t, 2.0, counterValue(t, syncPassesTotal.WithLabelValues("stale")))
}

func TestRecordRebuild(t *testing.T) {
	indicatorsTotal.Reset()
	rebuildsBefore := counterValue(t, indicatorRebuildsTotal)
	clustersBefore := counterValue(t, clustersTotal)

	RecordRebuild(2, 3, 4, 5, 2)

	require.Equal(t, rebuildsBefore+1, counterValue(t, indicatorRebuildsTotal))
	require.Equal(t, 2.0, counterValue(t, indicatorsTotal.WithLabelValues("editor")))
	require.Equal(t, 3.0, counterValue(t, indicatorsTotal.WithLabelValues("annotation")))
	require.Equal(t, 4.0, counterValue(t, indicatorsTotal.WithLabelValues("text")))
	require.Equal(t, 5.0, counterValue(t, indicatorsTotal.WithLabelValues("detached")))
	require.Equal(t, clustersBefore+2, counterValue(t, clustersTotal))
}
