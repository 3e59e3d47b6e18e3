package Controllers

import (
	"encoding/json"
	"strconv"
	"strings"

	"Osprey/Models"
	"Osprey/Schedule"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaintenanceController handles maintenance items, their tasks and their
// recurring schedules
type MaintenanceController struct {
	DB *gorm.DB
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

type ScheduleRequest struct {
	Frequency  string                 `json:"frequency"`
	Recurrence map[string]interface{} `json:"recurrence"`
}

func validFrequency(frequency string) bool {
	switch frequency {
	case Schedule.FrequencyWeekly, Schedule.FrequencyMonthly, Schedule.FrequencyQuarterly:
		return true
	}
	return false
}

// GetMaintenances retrieves all maintenance items with their tasks
func (c *MaintenanceController) GetMaintenances(ctx *fiber.Ctx) error {
	var maintenances []Models.Maintenance
	if err := c.DB.Preload("Tasks").Find(&maintenances).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve maintenance items"})
	}
	return ctx.JSON(maintenances)
}

// GetMaintenance retrieves a single maintenance item by ID
func (c *MaintenanceController) GetMaintenance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.Preload("Tasks").First(&maintenance, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}
	return ctx.JSON(maintenance)
}

// CreateMaintenance creates a new maintenance item
func (c *MaintenanceController) CreateMaintenance(ctx *fiber.Ctx) error {
	var input Models.Maintenance
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if input.Frequency != "" && !validFrequency(input.Frequency) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frequency must be Weekly, Monthly or Quarterly"})
	}

	maintenance := Models.Maintenance{
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		Recurrence:  input.Recurrence,
	}
	if err := c.DB.Create(&maintenance).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A maintenance item with this name already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create maintenance item"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(maintenance)
}

// UpdateMaintenance updates an existing maintenance item
func (c *MaintenanceController) UpdateMaintenance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}

	var input Models.Maintenance
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Frequency != "" && !validFrequency(input.Frequency) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frequency must be Weekly, Monthly or Quarterly"})
	}

	c.DB.Model(&maintenance).Updates(Models.Maintenance{
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		Recurrence:  input.Recurrence,
	})

	return ctx.JSON(maintenance)
}

// DeleteMaintenance soft deletes a maintenance item
func (c *MaintenanceController) DeleteMaintenance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}

	c.DB.Delete(&maintenance)

	return ctx.JSON(fiber.Map{"message": "Maintenance item deleted successfully"})
}

// GetTasks lists the tasks under a maintenance item
func (c *MaintenanceController) GetTasks(ctx *fiber.Ctx) error {
	maintenanceID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}

	var tasks []Models.MaintenanceTask
	if err := c.DB.Where("maintenance_id = ?", maintenanceID).Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

// CreateTask adds a task under a maintenance item. The task name is also the
// location string that selects which assets the task covers.
func (c *MaintenanceController) CreateTask(ctx *fiber.Ctx) error {
	maintenanceID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance ID"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, maintenanceID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}

	var input Models.MaintenanceTask
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(input.Name) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if input.Frequency != "" && !validFrequency(input.Frequency) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frequency must be Weekly, Monthly or Quarterly"})
	}

	task := Models.MaintenanceTask{
		MaintenanceID: uint(maintenanceID),
		Name:          input.Name,
		Assignee:      input.Assignee,
		Frequency:     input.Frequency,
		Recurrence:    input.Recurrence,
	}
	if err := c.DB.Create(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask updates a task's name, assignee or schedule
func (c *MaintenanceController) UpdateTask(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.MaintenanceTask
	if err := c.DB.First(&task, taskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var input Models.MaintenanceTask
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Frequency != "" && !validFrequency(input.Frequency) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frequency must be Weekly, Monthly or Quarterly"})
	}

	c.DB.Model(&task).Updates(Models.MaintenanceTask{
		Name:       input.Name,
		Assignee:   input.Assignee,
		Frequency:  input.Frequency,
		Recurrence: input.Recurrence,
	})

	return ctx.JSON(task)
}

// DeleteTask soft deletes a task
func (c *MaintenanceController) DeleteTask(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.MaintenanceTask
	if err := c.DB.First(&task, taskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	c.DB.Delete(&task)

	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// GetTaskSchedule returns the schedule the task actually runs on: its own
// recurrence when set, otherwise the maintenance-level default.
func (c *MaintenanceController) GetTaskSchedule(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.MaintenanceTask
	if err := c.DB.First(&task, taskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, task.MaintenanceID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}

	frequency, periods := Models.EffectiveSchedule(&task, &maintenance)
	return ctx.JSON(fiber.Map{
		"task_id":    task.ID,
		"frequency":  frequency,
		"recurrence": periods,
		"inherited":  len(Models.PeriodMap(task.Recurrence)) == 0,
	})
}

// UpdateTaskSchedule replaces a task's own recurrence definition
func (c *MaintenanceController) UpdateTaskSchedule(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("task_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.MaintenanceTask
	if err := c.DB.First(&task, taskID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var req ScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !validFrequency(req.Frequency) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frequency must be Weekly, Monthly or Quarterly"})
	}

	raw, err := json.Marshal(req.Recurrence)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recurrence"})
	}

	task.Frequency = req.Frequency
	task.Recurrence = datatypes.JSON(raw)
	if err := c.DB.Save(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update schedule"})
	}

	return ctx.JSON(task)
}
