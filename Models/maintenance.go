package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Maintenance is a recurring maintenance/inspection definition. Recurrence
// holds the default period map used by tasks that have no schedule of their
// own; its shape depends on Frequency (see the Schedule package).
type Maintenance struct {
	gorm.Model
	Name        string            `json:"name" gorm:"uniqueIndex"`
	Description string            `json:"description" gorm:"type:text"`
	Frequency   string            `json:"frequency"` // Weekly | Monthly | Quarterly
	Recurrence  datatypes.JSON    `json:"recurrence"`
	Tasks       []MaintenanceTask `json:"tasks" gorm:"foreignKey:MaintenanceID;constraint:OnDelete:CASCADE"`
}

// MaintenanceTask is one named duty under a maintenance item. Name doubles
// as the location string that selects which assets the task covers. A task
// may carry its own recurrence; when empty the maintenance default applies.
type MaintenanceTask struct {
	gorm.Model
	MaintenanceID uint           `json:"maintenance_id" gorm:"index"`
	Name          string         `json:"name"`
	Assignee      string         `json:"assignee"`
	Frequency     string         `json:"frequency"`
	Recurrence    datatypes.JSON `json:"recurrence"`
}

// InspectionRecord is one outcome of inspecting one asset on one date for
// one maintenance item. Resubmission updates the existing row (upsert by
// asset + maintenance + date). Unlinked records stay in the table but stop
// feeding task calendars.
type InspectionRecord struct {
	gorm.Model
	AssetID          uint   `json:"asset_id" gorm:"index"`
	MaintenanceID    uint   `json:"maintenance_id" gorm:"index"`
	TaskName         string `json:"task_name"`
	Date             string `json:"date" gorm:"index"` // YYYY-MM-DD
	InspectionStatus string `json:"inspection_status"` // pending | complete
	Status           string `json:"status"`            // normal | fault | abnormal
	Notes            string `json:"notes" gorm:"type:text"`
	Inspector        string `json:"inspector"`
	Unlinked         bool   `json:"unlinked" gorm:"default:false"`
}

// PeriodMap decodes a stored recurrence JSON column. A null or corrupt
// column decodes to nil, which expands to no dates.
func PeriodMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var periods map[string]interface{}
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil
	}
	return periods
}

// EffectiveSchedule resolves a task's frequency and period map, falling back
// to the maintenance-level default when the task has no schedule of its own.
func EffectiveSchedule(task *MaintenanceTask, maintenance *Maintenance) (string, map[string]interface{}) {
	if task != nil {
		if periods := PeriodMap(task.Recurrence); len(periods) > 0 {
			frequency := task.Frequency
			if frequency == "" {
				frequency = maintenance.Frequency
			}
			return frequency, periods
		}
	}
	return maintenance.Frequency, PeriodMap(maintenance.Recurrence)
}
