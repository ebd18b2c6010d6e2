package group

type Group struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:text;not null"`
}

func (g Group) String() string {
	return g.Title
}
