package entity

import (
	"time"

	"github.com/forumix/backend/pkg/enum"
)

// PreferenceLevel controls how one notification kind is delivered.
type PreferenceLevel string

var (
	// PreferenceForbid drops the notification entirely.
	PreferenceForbid = enum.New(PreferenceLevel("forbid"))

	// PreferenceSilent stores the notification already marked viewed.
	PreferenceSilent = enum.New(PreferenceLevel("silent"))

	// PreferenceFollowed alerts only for senders the recipient follows and
	// has not blocked, everything else arrives silently.
	PreferenceFollowed = enum.New(PreferenceLevel("followed"))

	// PreferenceAlert delivers every notification unread.
	PreferenceAlert = enum.New(PreferenceLevel("alert"))
)

// MessageSetting holds one user's delivery preference per notification kind.
type MessageSetting struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	UpdatedAt time.Time

	Reply   PreferenceLevel `gorm:"default:alert"`
	At      PreferenceLevel `gorm:"default:alert"`
	Like    PreferenceLevel `gorm:"default:alert"`
	Dynamic PreferenceLevel `gorm:"default:alert"`
	System  PreferenceLevel `gorm:"default:alert"`
	Private PreferenceLevel `gorm:"default:alert"`
}

// Preference returns the level configured for a notification kind.
func (s MessageSetting) Preference(kind NotificationKind) PreferenceLevel {
	switch kind {
	case NotifyReply:
		return s.Reply
	case NotifyAt:
		return s.At
	case NotifyLike:
		return s.Like
	case NotifyDynamic:
		return s.Dynamic
	case NotifySystem:
		return s.System
	case NotifyPrivate:
		return s.Private
	}

	return PreferenceAlert
}
