package models

// Notification represents notifications sent to users. Rows are created as a
// side effect of point-earning events and mutated only by marking read.
type Notification struct {
	Model
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Message string `json:"message" gorm:"type:varchar(500)"`
	Type    string `json:"type" gorm:"type:varchar(50)"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
