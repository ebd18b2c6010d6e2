package comment

import (
	"time"

	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

const ExcerptLength = 10

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    uint      `gorm:"not null;index"`
	Post      post.Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (c Comment) String() string {
	r := []rune(c.Text)
	if len(r) <= ExcerptLength {
		return c.Text
	}
	return string(r[:ExcerptLength])
}
