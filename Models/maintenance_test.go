package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestPeriodMap(t *testing.T) {
	tests := []struct {
		name string
		raw  datatypes.JSON
		want map[string]interface{}
	}{
		{"nil column", nil, nil},
		{"empty column", datatypes.JSON(""), nil},
		{"corrupt json", datatypes.JSON("{not json"), nil},
		{
			"monthly shape",
			datatypes.JSON(`{"January":"2025-01-15"}`),
			map[string]interface{}{"January": "2025-01-15"},
		},
		{
			"weekly shape",
			datatypes.JSON(`{"January":{"Week1":"2025-01-06"}}`),
			map[string]interface{}{"January": map[string]interface{}{"Week1": "2025-01-06"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodMap(tt.raw))
		})
	}
}

func TestEffectiveSchedule(t *testing.T) {
	maintenance := &Maintenance{
		Frequency:  "Monthly",
		Recurrence: datatypes.JSON(`{"January":"2025-01-15"}`),
	}

	t.Run("task schedule wins when present", func(t *testing.T) {
		task := &MaintenanceTask{
			Frequency:  "Weekly",
			Recurrence: datatypes.JSON(`{"January":{"Week1":"2025-01-06"}}`),
		}
		frequency, periods := EffectiveSchedule(task, maintenance)
		assert.Equal(t, "Weekly", frequency)
		assert.Contains(t, periods, "January")
	})

	t.Run("task without schedule inherits the default", func(t *testing.T) {
		task := &MaintenanceTask{}
		frequency, periods := EffectiveSchedule(task, maintenance)
		assert.Equal(t, "Monthly", frequency)
		assert.Equal(t, map[string]interface{}{"January": "2025-01-15"}, periods)
	})

	t.Run("task schedule without frequency uses the default frequency", func(t *testing.T) {
		task := &MaintenanceTask{
			Recurrence: datatypes.JSON(`{"February":"2025-02-10"}`),
		}
		frequency, periods := EffectiveSchedule(task, maintenance)
		assert.Equal(t, "Monthly", frequency)
		assert.Equal(t, map[string]interface{}{"February": "2025-02-10"}, periods)
	})

	t.Run("nil task falls back entirely", func(t *testing.T) {
		frequency, periods := EffectiveSchedule(nil, maintenance)
		assert.Equal(t, "Monthly", frequency)
		assert.NotEmpty(t, periods)
	})
}
