package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipation_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Participation
		wantField string
		wantTotal int
		wantCount int
	}{
		{
			name:      "single category defaults count to one",
			in:        Participation{EventID: "e1", UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: CategoryKhuddam},
			wantTotal: 1,
			wantCount: 1,
		},
		{
			name:      "single category keeps count",
			in:        Participation{EventID: "e1", UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: CategoryAnsar, ParticipantCount: 4},
			wantTotal: 4,
			wantCount: 4,
		},
		{
			name:      "missing user",
			in:        Participation{EventID: "e1", ParticipantName: "Ahmad", ParticipantCategory: CategoryAnsar},
			wantField: "userId",
		},
		{
			name:      "missing name",
			in:        Participation{EventID: "e1", UserID: "u1", ParticipantCategory: CategoryAnsar},
			wantField: "participantName",
		},
		{
			name:      "missing category",
			in:        Participation{EventID: "e1", UserID: "u1", ParticipantName: "Ahmad"},
			wantField: "participantCategory",
		},
		{
			name:      "negative single count",
			in:        Participation{EventID: "e1", UserID: "u1", ParticipantName: "Ahmad", ParticipantCategory: CategoryAnsar, ParticipantCount: -2},
			wantField: "participantCount",
		},
		{
			name:      "breakdown computes total",
			in:        Participation{EventID: "e1", UserID: "u1", Breakdown: CategoryCounts{CategoryLajna: 2, CategoryNasirat: 3, CategoryKinder: 0}},
			wantTotal: 5,
		},
		{
			name:      "breakdown accepts matching total",
			in:        Participation{EventID: "e1", UserID: "u1", Breakdown: CategoryCounts{CategoryAtfal: 2}, TotalCount: 2},
			wantTotal: 2,
		},
		{
			name:      "breakdown rejects mismatched total",
			in:        Participation{EventID: "e1", UserID: "u1", Breakdown: CategoryCounts{CategoryAtfal: 2}, TotalCount: 7},
			wantField: "totalCount",
		},
		{
			name:      "breakdown rejects negative",
			in:        Participation{EventID: "e1", UserID: "u1", Breakdown: CategoryCounts{CategoryAtfal: -1}},
			wantField: "categoryCounts",
		},
		{
			name:      "breakdown of zeros",
			in:        Participation{EventID: "e1", UserID: "u1", Breakdown: CategoryCounts{CategoryAtfal: 0}},
			wantField: "categoryCounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			err := p.Normalize()
			if tt.wantField != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, p.TotalCount)
			assert.Equal(t, tt.wantCount, p.ParticipantCount)
			assert.Equal(t, p.TotalCount, p.Contributions().Total())
		})
	}
}

func TestParticipation_Contributions(t *testing.T) {
	single := &Participation{ParticipantCategory: "Gäste", ParticipantCount: 3}
	assert.Equal(t, CategoryCounts{"Gäste": 3}, single.Contributions())

	breakdown := &Participation{Breakdown: CategoryCounts{CategoryKhuddam: 1, CategoryAnsar: 2}}
	got := breakdown.Contributions()
	assert.Equal(t, CategoryCounts{CategoryKhuddam: 1, CategoryAnsar: 2}, got)

	got[CategoryKhuddam] = 99
	assert.Equal(t, 1, breakdown.Breakdown[CategoryKhuddam], "contributions must be a copy")

	assert.Empty(t, (&Participation{}).Contributions(), "unlabelled record")
	assert.Empty(t, (&Participation{ParticipantCategory: CategoryLajna}).Contributions(), "zero count")
	assert.Equal(t, CategoryCounts{CategoryAtfal: 1},
		(&Participation{Breakdown: CategoryCounts{CategoryAtfal: 1, CategoryKinder: 0}}).Contributions())
}
