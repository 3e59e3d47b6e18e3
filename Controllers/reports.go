package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"Osprey/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportController exports ad-hoc asset and inspection reports as Excel
// workbooks
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ExportInspections writes the inspection log to an Excel file, optionally
// filtered by maintenance item and date range.
// GET /api/reports/inspections?maintenance_id=&from=&to=
func (c *ReportController) ExportInspections(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.InspectionRecord{}).Where("unlinked = ?", false)

	if v := ctx.Query("maintenance_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance_id"})
		}
		query = query.Where("maintenance_id = ?", id)
	}
	if v := ctx.Query("from"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be in YYYY-MM-DD format"})
		}
		query = query.Where("date >= ?", v)
	}
	if v := ctx.Query("to"); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be in YYYY-MM-DD format"})
		}
		query = query.Where("date <= ?", v)
	}

	var records []Models.InspectionRecord
	if err := query.Order("date").Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve inspections"})
	}

	// Resolve asset tags for readability
	assetTags := make(map[uint]string)
	var assets []Models.Asset
	if err := c.DB.Find(&assets).Error; err == nil {
		for _, a := range assets {
			assetTags[a.ID] = a.AssetTag
		}
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	headers := []string{"Date", "Asset Tag", "Task", "Submitted", "Condition", "Inspector", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}
	for i, rec := range records {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.Date)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), assetTags[rec.AssetID])
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.TaskName)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.InspectionStatus)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.Status)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.Inspector)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.Notes)
	}

	filename := fmt.Sprintf("inspection_report_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	if err := file.SaveAs(filename); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write report"})
	}

	return ctx.SendFile(filename, true)
}

// ExportAssets writes the asset register to an Excel file.
// GET /api/reports/assets?location=
func (c *ReportController) ExportAssets(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Asset{})
	if location := ctx.Query("location"); location != "" {
		query = query.Where("location_description = ?", location)
	}

	var assets []Models.Asset
	if err := query.Order("asset_tag").Find(&assets).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assets"})
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	headers := []string{"Asset Tag", "Name", "Category", "Serial No", "Location", "QR Tag", "RFID Tag", "Purchase Date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}
	for i, a := range assets {
		row := i + 2
		values := []interface{}{a.AssetTag, a.Name, a.Category, a.SerialNo,
			a.LocationDescription, a.QRTag, a.RFIDTag, a.PurchaseDate, a.Status}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			file.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("asset_register_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	if err := file.SaveAs(filename); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write report"})
	}

	return ctx.SendFile(filename, true)
}
