package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_ApplyDefaultsAndValidate(t *testing.T) {
	e := &Event{
		Title:     "  Jalsa  ",
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Category:  "Ijtema",
		CreatedBy: "admin",
	}
	e.ApplyDefaults()
	require.NoError(t, e.Validate())
	assert.Equal(t, "Jalsa", e.Title)
	assert.Equal(t, DefaultStartTime, e.StartTime)
	assert.Equal(t, DefaultEndTime, e.EndTime)
	assert.Equal(t, DefaultLocation, e.Location)

	tests := []struct {
		name  string
		mut   func(e *Event)
		field string
	}{
		{"title", func(e *Event) { e.Title = " " }, "title"},
		{"date", func(e *Event) { e.Date = time.Time{} }, "date"},
		{"category", func(e *Event) { e.Category = "" }, "category"},
		{"createdBy", func(e *Event) { e.CreatedBy = "" }, "createdBy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *e
			tt.mut(&c)
			var verr *ValidationError
			require.ErrorAs(t, c.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEventFilter_Matches(t *testing.T) {
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	endOfJune := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	public := &Event{Date: june}
	hidden := &Event{Date: june, IsAdminOnly: true}

	assert.True(t, EventFilter{}.Matches(public))
	assert.False(t, EventFilter{}.Matches(hidden))
	assert.True(t, EventFilter{IncludeAdminOnly: true}.Matches(hidden))
	assert.True(t, EventFilter{From: &may, To: &endOfJune}.Matches(public))
	assert.True(t, EventFilter{From: &june, To: &june}.Matches(public), "bounds are inclusive")
	assert.False(t, EventFilter{To: &may}.Matches(public))
	assert.False(t, EventFilter{From: &endOfJune}.Matches(public))
	assert.False(t, EventFilter{Before: &june}.Matches(public), "Before is exclusive")
	assert.True(t, EventFilter{From: &may, Before: &endOfJune}.Matches(public))
}

func TestEventFilter_Inverted(t *testing.T) {
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, EventFilter{}.Inverted())
	assert.False(t, EventFilter{From: &may, To: &may}.Inverted())
	assert.True(t, EventFilter{From: &june, To: &may}.Inverted())
	assert.False(t, EventFilter{From: &may, Before: &june}.Inverted())
	assert.True(t, EventFilter{From: &june, Before: &june}.Inverted())
	assert.False(t, EventFilter{Before: &may}.Inverted())
}

func TestEventPatch_Apply(t *testing.T) {
	e := &Event{Title: "Old", Category: "Ijtema", Location: DefaultLocation}
	title := " New "
	admin := true
	EventPatch{Title: &title, IsAdminOnly: &admin}.Apply(e)

	assert.Equal(t, "New", e.Title)
	assert.True(t, e.IsAdminOnly)
	assert.Equal(t, "Ijtema", e.Category)
	assert.Equal(t, DefaultLocation, e.Location)
}
