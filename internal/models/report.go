package models

import (
	"time"
)

type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	Reporter   User      `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReporteeID uint      `gorm:"not null;index" json:"reportee_id"`
	Reportee   User      `gorm:"foreignKey:ReporteeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ThreadID   *uint     `gorm:"index" json:"thread_id"`
	ReplyID    *uint     `gorm:"index" json:"reply_id"`
	Reason     string    `gorm:"size:200;not null" json:"reason"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
