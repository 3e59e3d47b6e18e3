package Controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"Osprey/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// AssetController handles asset-related API endpoints
type AssetController struct {
	DB *gorm.DB
}

// NewAssetController creates a new AssetController
func NewAssetController(db *gorm.DB) *AssetController {
	return &AssetController{DB: db}
}

// GetAssets retrieves all assets, optionally filtered by location, category
// or status
func (c *AssetController) GetAssets(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Asset{})
	if location := ctx.Query("location"); location != "" {
		query = query.Where("location_description = ?", location)
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var assets []Models.Asset
	if err := query.Order("asset_tag").Find(&assets).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assets"})
	}

	return ctx.JSON(assets)
}

// GetAsset retrieves a single asset by ID
func (c *AssetController) GetAsset(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset ID"})
	}

	var asset Models.Asset
	if err := c.DB.First(&asset, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}

	return ctx.JSON(asset)
}

// GetAssetByTag resolves a scanned QR or RFID tag (or a typed asset tag) to
// an asset. GET /api/assets/scan?tag=...
func (c *AssetController) GetAssetByTag(ctx *fiber.Ctx) error {
	tag := strings.TrimSpace(ctx.Query("tag"))
	if tag == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tag is required"})
	}

	var asset Models.Asset
	result := c.DB.Where("qr_tag = ? OR rfid_tag = ? OR asset_tag = ?", tag, tag, tag).First(&asset)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No asset matches this tag"})
	}

	return ctx.JSON(asset)
}

// CreateAsset creates a new asset
func (c *AssetController) CreateAsset(ctx *fiber.Ctx) error {
	var input Models.Asset
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.AssetTag == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "asset_tag is required"})
	}
	if input.PurchaseDate != "" {
		if _, err := time.Parse("2006-01-02", input.PurchaseDate); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purchase_date must be in YYYY-MM-DD format"})
		}
	}
	if input.Status == "" {
		input.Status = "active"
	}

	asset := Models.Asset{
		AssetTag:            input.AssetTag,
		Name:                input.Name,
		Category:            input.Category,
		SerialNo:            input.SerialNo,
		LocationDescription: input.LocationDescription,
		QRTag:               input.QRTag,
		RFIDTag:             input.RFIDTag,
		PurchaseDate:        input.PurchaseDate,
		Status:              input.Status,
	}

	if err := c.DB.Create(&asset).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An asset with this tag already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create asset"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(asset)
}

// UpdateAsset updates an existing asset
func (c *AssetController) UpdateAsset(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset ID"})
	}

	var asset Models.Asset
	if err := c.DB.First(&asset, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}

	var input Models.Asset
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.PurchaseDate != "" {
		if _, err := time.Parse("2006-01-02", input.PurchaseDate); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purchase_date must be in YYYY-MM-DD format"})
		}
	}

	c.DB.Model(&asset).Updates(Models.Asset{
		AssetTag:            input.AssetTag,
		Name:                input.Name,
		Category:            input.Category,
		SerialNo:            input.SerialNo,
		LocationDescription: input.LocationDescription,
		QRTag:               input.QRTag,
		RFIDTag:             input.RFIDTag,
		PurchaseDate:        input.PurchaseDate,
		Status:              input.Status,
	})

	return ctx.JSON(asset)
}

// DeleteAsset soft deletes an asset
func (c *AssetController) DeleteAsset(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset ID"})
	}

	var asset Models.Asset
	if err := c.DB.First(&asset, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
	}

	c.DB.Delete(&asset)

	return ctx.JSON(fiber.Map{"message": "Asset deleted successfully"})
}

// ImportAssets bulk-creates assets from an uploaded Excel sheet. Expected
// columns: AssetTag, Name, Category, SerialNo, Location, QRTag, RFIDTag,
// PurchaseDate, Status. The first row is treated as a header. Bad rows are
// skipped and reported, not fatal.
// POST /api/assets/import (multipart, field "file")
func (c *AssetController) ImportAssets(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not open uploaded file"})
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file is not a valid Excel workbook"})
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read sheet"})
	}

	result := Models.AssetImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		asset := Models.Asset{
			AssetTag:            cell(0),
			Name:                cell(1),
			Category:            cell(2),
			SerialNo:            cell(3),
			LocationDescription: cell(4),
			QRTag:               cell(5),
			RFIDTag:             cell(6),
			PurchaseDate:        cell(7),
			Status:              cell(8),
		}
		if asset.AssetTag == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing asset tag", i+1))
			continue
		}
		if asset.PurchaseDate != "" {
			if _, err := time.Parse("2006-01-02", asset.PurchaseDate); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad purchase date %q", i+1, asset.PurchaseDate))
				continue
			}
		}
		if asset.Status == "" {
			asset.Status = "active"
		}

		if err := c.DB.Create(&asset).Error; err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}

	return ctx.JSON(result)
}
