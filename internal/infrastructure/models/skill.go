package models

type Skill struct {
	ID       int64  `gorm:"column:skill_id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:skill_name;type:varchar(100);not null;uniqueIndex"`
	Category string `gorm:"type:varchar(32);not null"`
}

func (Skill) TableName() string {
	return "skills"
}
