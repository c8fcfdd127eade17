package department

// Department is the lookup table assets reference via department_id. The
// asset row also keeps the denormalized name for records created before the
// table existed.
type Department struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Department) TableName() string {
	return "departments"
}
