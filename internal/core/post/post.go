package post

import (
	"time"

	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

// ExcerptLength is the number of characters of text shown by String.
const ExcerptLength = 15

type Post struct {
	ID        uint         `gorm:"primaryKey;autoIncrement"`
	Text      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint        `gorm:"index"`
	Group     *group.Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image     string       `gorm:"type:varchar(255)"`
}

func (p Post) String() string {
	return truncate(p.Text, ExcerptLength)
}

// Filter narrows a feed. Zero value means the global feed.
type Filter struct {
	GroupID    *uint
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID // posts by authors this user follows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
