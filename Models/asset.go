package Models

import "gorm.io/gorm"

// Asset is one tracked piece of equipment. LocationDescription doubles as
// the join key to maintenance tasks: a task covers every asset whose
// location matches the task name.
type Asset struct {
	gorm.Model
	AssetTag            string `json:"asset_tag" gorm:"uniqueIndex"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	SerialNo            string `json:"serial_no"`
	LocationDescription string `json:"location_description" gorm:"index"`
	QRTag               string `json:"qr_tag" gorm:"index"`
	RFIDTag             string `json:"rfid_tag" gorm:"index"`
	PurchaseDate        string `json:"purchase_date"` // YYYY-MM-DD
	Status              string `json:"status"`        // active | repair | retired
}

// AssetImportResult summarizes a bulk upload.
type AssetImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
