package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvSummaryRendererImpl_Render(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name: "render summary lines",
			result: Result{
				Mode: ModeByName,
				Summaries: []ActivitySummary{
					{Name: "Gym", TotalMinutes: 90, EventCount: 2, FormattedDuration: "1h 30m", Color: "#3f51b5"},
					{Name: "Run", TotalMinutes: 45, EventCount: 1, FormattedDuration: "45m"},
				},
			},
			want: "Activity,Duration,Minutes,Events,Color\n" +
				"Gym,1h 30m,90,2,#3f51b5\n" +
				"Run,45m,45,1,\n",
		},
		{
			name:   "render empty summary",
			result: Result{Mode: ModeByName},
			want:   "Activity,Duration,Minutes,Events,Color\n",
		},
		{
			name: "quote names containing commas",
			result: Result{
				Mode: ModeByName,
				Summaries: []ActivitySummary{
					{Name: "Chess, blitz", TotalMinutes: 30, EventCount: 1, FormattedDuration: "30m"},
				},
			},
			want: "Activity,Duration,Minutes,Events,Color\n" +
				"\"Chess, blitz\",30m,30,1,\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewCsvSummaryRendererImpl()

			got, err := renderer.Render(tt.result)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
