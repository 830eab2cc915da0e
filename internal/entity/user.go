package entity

type User struct {
	Base

	Name           string `gorm:"unique"`
	Phone          string `gorm:"unique"`
	HashedPassword string
	Avatar         string
	Introduction   string

	// Denormalized social counters, kept in sync with the follow and vote
	// tables inside the same transaction that changes them.
	FollowingNum int64
	FollowerNum  int64
	UpNum        int64

	Experience int64
}
