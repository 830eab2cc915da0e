package entity

import "time"

// Follow is a directed edge from follower to following.
type Follow struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowingID string `gorm:"primaryKey"`
	Following   User   `gorm:"foreignKey:FollowingID"`
}

// Blacklist is a directed edge from user to the account it blocked.
type Blacklist struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TargetID string `gorm:"primaryKey"`
	Target   User   `gorm:"foreignKey:TargetID"`
}
