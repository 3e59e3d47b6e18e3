package Controllers

import (
	"strconv"
	"time"

	"Osprey/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InspectionController handles inspection submission and listing
type InspectionController struct {
	DB *gorm.DB
}

// NewInspectionController creates a new InspectionController
func NewInspectionController(db *gorm.DB) *InspectionController {
	return &InspectionController{DB: db}
}

type InspectionRequest struct {
	AssetID       uint   `json:"asset_id"`
	MaintenanceID uint   `json:"maintenance_id"`
	TaskName      string `json:"task_name"`
	Date          string `json:"date"`
	Status        string `json:"status"` // normal | fault | abnormal
	Notes         string `json:"notes"`
}

// SubmitInspection records one inspection outcome. Resubmitting for the same
// asset, maintenance item and date updates the existing record rather than
// creating a duplicate.
// POST /api/inspections
func (c *InspectionController) SubmitInspection(ctx *fiber.Ctx) error {
	var req InspectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	if req.AssetID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "asset_id is required",
		})
	}
	if req.MaintenanceID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "maintenance_id is required",
		})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Date must be in YYYY-MM-DD format",
		})
	}
	switch req.Status {
	case "", "normal", "fault", "abnormal":
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "status must be normal, fault or abnormal",
		})
	}

	// Check the referenced rows exist
	var asset Models.Asset
	if err := c.DB.First(&asset, req.AssetID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}
	var maintenance Models.Maintenance
	if err := c.DB.First(&maintenance, req.MaintenanceID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance item not found"})
	}

	inspector := ""
	if user, ok := ctx.Locals("user").(Models.User); ok {
		inspector = user.Name
	}
	status := req.Status
	if status == "" {
		status = "normal"
	}

	// Upsert by asset + maintenance + date
	var record Models.InspectionRecord
	err := c.DB.Where("asset_id = ? AND maintenance_id = ? AND date = ?",
		req.AssetID, req.MaintenanceID, req.Date).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		record = Models.InspectionRecord{
			AssetID:          req.AssetID,
			MaintenanceID:    req.MaintenanceID,
			TaskName:         req.TaskName,
			Date:             req.Date,
			InspectionStatus: "complete",
			Status:           status,
			Notes:            req.Notes,
			Inspector:        inspector,
		}
		if err := c.DB.Create(&record).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save inspection"})
		}
		return ctx.Status(fiber.StatusCreated).JSON(record)
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	record.TaskName = req.TaskName
	record.InspectionStatus = "complete"
	record.Status = status
	record.Notes = req.Notes
	record.Inspector = inspector
	record.Unlinked = false
	if err := c.DB.Save(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save inspection"})
	}

	return ctx.JSON(record)
}

// GetInspections lists inspection records filtered by maintenance, asset
// and/or date. Unlinked records are excluded unless include_unlinked=true.
// GET /api/inspections
func (c *InspectionController) GetInspections(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.InspectionRecord{})

	if v := ctx.Query("maintenance_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance_id"})
		}
		query = query.Where("maintenance_id = ?", id)
	}
	if v := ctx.Query("asset_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset_id"})
		}
		query = query.Where("asset_id = ?", id)
	}
	if v := ctx.Query("date"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
		}
		query = query.Where("date = ?", v)
	}
	if ctx.Query("include_unlinked") != "true" {
		query = query.Where("unlinked = ?", false)
	}

	var records []Models.InspectionRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve inspections"})
	}

	return ctx.JSON(records)
}

// UnlinkInspection soft-removes a record from its task's calendar. The row
// is kept for audit; it just stops feeding status reconciliation.
// PUT /api/inspections/:id/unlink
func (c *InspectionController) UnlinkInspection(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid inspection ID"})
	}

	var record Models.InspectionRecord
	if err := c.DB.First(&record, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inspection not found"})
	}

	record.Unlinked = true
	if err := c.DB.Save(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unlink inspection"})
	}

	return ctx.JSON(fiber.Map{"message": "Inspection unlinked"})
}
