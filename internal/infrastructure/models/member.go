package models

import (
	"time"
)

type Member struct {
	ID         int64   `gorm:"column:mem_id;primaryKey;autoIncrement"`
	FirstName  string  `gorm:"type:varchar(100);not null"`
	MiddleName *string `gorm:"type:varchar(100)"`
	LastName   string  `gorm:"type:varchar(100);not null"`
	Email      string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNo    string  `gorm:"type:varchar(10);not null;uniqueIndex"`
	RoleID     *int64  `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Member) TableName() string {
	return "team_members"
}
