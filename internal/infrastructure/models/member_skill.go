package models

import "time"

type MemberSkill struct {
	MemberID         int64 `gorm:"column:mem_id;primaryKey;autoIncrement:false"`
	SkillID          int64 `gorm:"primaryKey;autoIncrement:false"`
	ProficiencyLevel int   `gorm:"not null"`
	UpdatedAt        time.Time
}

func (MemberSkill) TableName() string {
	return "mem_skills"
}
