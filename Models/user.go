package Models

import "gorm.io/gorm"

// Permission levels: 1 = staff, 2 = supervisor, 3 = admin.
type User struct {
	gorm.Model
	Name       string `json:"name"`
	Username   string `json:"username" gorm:"uniqueIndex"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission"`
}
