package entity

import "time"

// Vote is the per-voter vote state on one content record. The composite
// primary key is the database backstop against duplicated votes.
type Vote struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	VoterID string `gorm:"primaryKey"`
	Voter   User   `gorm:"foreignKey:VoterID"`

	Origin   Origin `gorm:"primaryKey"`
	TargetID int64  `gorm:"primaryKey"`

	IsUp bool
}

// View records that a user opened a content record once. Repeat visits do
// not touch the view counter.
type View struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Origin   Origin `gorm:"primaryKey"`
	TargetID int64  `gorm:"primaryKey"`
}
