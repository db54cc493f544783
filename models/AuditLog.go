package models

import (
	"gorm.io/gorm"
)

// AuditLog records admin mutations (pitch suspension, schedule edits).
type AuditLog struct {
	gorm.Model
	AdminUserID  uint   `json:"adminUserID" gorm:"index"`
	Action       string `json:"action"`
	ResourceType string `json:"resourceType" gorm:"index"`
	ResourceID   uint   `json:"resourceID" gorm:"index"`
	BeforeJSON   string `json:"beforeJSON" gorm:"type:text"`
	AfterJSON    string `json:"afterJSON" gorm:"type:text"`
	IPAddress    string `json:"ipAddress"`
}
