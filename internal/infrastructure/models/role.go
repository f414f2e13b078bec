package models

type Role struct {
	ID          int64  `gorm:"column:role_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:role_name;type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (Role) TableName() string {
	return "roles"
}

type RoleRequirement struct {
	RoleID         int64 `gorm:"primaryKey;autoIncrement:false"`
	SkillID        int64 `gorm:"primaryKey;autoIncrement:false"`
	MinProficiency int   `gorm:"column:min_proficiency_required;not null"`
}

func (RoleRequirement) TableName() string {
	return "role_requirements"
}
