package Controllers

import (
	"strconv"
	"time"

	"Osprey/Models"
	"Osprey/Schedule"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CalendarController renders a task's schedule as status-labeled dates. It
// glues the stores to the Schedule package: expand the recurrence, match the
// covered assets by location, gather their inspection records per date and
// reconcile each date to one display status.
type CalendarController struct {
	DB *gorm.DB
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(db *gorm.DB) *CalendarController {
	return &CalendarController{DB: db}
}

// GetTaskCalendar returns one row per scheduled date for a task.
// GET /api/maintenances/:id/tasks/:task_id/calendar?year=2025
func (c *CalendarController) GetTaskCalendar(ctx *fiber.Ctx) error {
	maintenanceID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}
	taskID, err := strconv.Atoi(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, maintenanceID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}
	var task Models.MaintenanceTask
	if err := c.DB.Where("maintenance_id = ?", maintenanceID).First(&task, taskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	today := time.Now()
	frequency, periods := Models.EffectiveSchedule(&task, &maintenance)
	dates := Schedule.ExpandDates(periods, frequency, today.Year())

	if v := ctx.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
		}
		filtered := dates[:0]
		for _, d := range dates {
			if d.Year() == year {
				filtered = append(filtered, d)
			}
		}
		dates = filtered
	}

	recordsByDate, err := c.inspectionsByDate(uint(maintenanceID), task.Name)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve inspections"})
	}

	days := make([]Schedule.DayStatus, 0, len(dates))
	for _, d := range dates {
		key := d.Format(Schedule.DateLayout)
		status := Schedule.Reconcile(d, today, recordsByDate[key])
		days = append(days, Schedule.DayStatus{
			Date:            key,
			StatusClass:     status.Class,
			StatusText:      status.Text,
			InspectionCount: status.InspectionCount,
		})
	}

	response := fiber.Map{
		"maintenance_id": maintenance.ID,
		"task_id":        task.ID,
		"task_name":      task.Name,
		"frequency":      frequency,
		"days":           days,
	}
	if next, ok := Schedule.NextUpcoming(dates, today); ok {
		response["next_due"] = next.Format(Schedule.DateLayout)
	}
	return ctx.JSON(response)
}

// inspectionsByDate gathers the task's linked inspection outcomes grouped by
// date string. Only assets whose location matches the task name feed the
// calendar; when none match, nothing does.
func (c *CalendarController) inspectionsByDate(maintenanceID uint, taskName string) (map[string][]Schedule.InspectionOutcome, error) {
	var assets []Models.Asset
	if err := c.DB.Find(&assets).Error; err != nil {
		return nil, err
	}

	refs := make([]Schedule.AssetRef, 0, len(assets))
	for _, a := range assets {
		refs = append(refs, Schedule.AssetRef{ID: a.ID, Location: a.LocationDescription})
	}
	matched := Schedule.MatchAssets(taskName, refs)

	byDate := make(map[string][]Schedule.InspectionOutcome)
	if len(matched) == 0 {
		return byDate, nil
	}

	ids := make([]uint, 0, len(matched))
	for _, a := range matched {
		ids = append(ids, a.ID)
	}

	var records []Models.InspectionRecord
	if err := c.DB.Where("maintenance_id = ? AND asset_id IN ? AND unlinked = ?",
		maintenanceID, ids, false).Find(&records).Error; err != nil {
		return nil, err
	}

	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], Schedule.InspectionOutcome{
			InspectionStatus: rec.InspectionStatus,
			Status:           rec.Status,
		})
	}
	return byDate, nil
}
