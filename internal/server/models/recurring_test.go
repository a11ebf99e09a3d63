package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecurringTemplate_NextAfter(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		unit  IntervalUnit
		count int
		want  time.Time
	}{
		{IntervalDay, 1, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
		{IntervalDay, 14, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{IntervalWeek, 2, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{IntervalMonth, 1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalMonth, 3, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalYear, 1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		tpl := &RecurringTemplate{IntervalUnit: tc.unit, IntervalCount: tc.count}
		require.Equal(t, tc.want, tpl.NextAfter(from), "unit=%s count=%d", tc.unit, tc.count)
	}
}

func TestRecurringTemplate_NextAfter_ZeroCountDefaultsToOne(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tpl := &RecurringTemplate{IntervalUnit: IntervalMonth, IntervalCount: 0}
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tpl.NextAfter(from))
}

func TestResourceType_Valid(t *testing.T) {
	for _, rt := range []ResourceType{ResourceTypeProject, ResourceTypeInvoice, ResourceTypeQuote, ResourceTypeHosting} {
		require.True(t, rt.Valid())
	}
	require.False(t, ResourceType("client").Valid())
	require.False(t, ResourceType("").Valid())
}
