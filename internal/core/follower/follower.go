package follower

import (
	"time"

	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follow is a directed edge: User receives Author's posts in the follow feed.
// The pair is unique and a user cannot follow themselves; both rules are
// enforced by the database.
type Follow struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_follow;check:user_not_equal_author,user_id <> author_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_follow;index"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
