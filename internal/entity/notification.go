package entity

import "github.com/forumix/backend/pkg/enum"

type NotificationKind string

var (
	NotifyReply   = enum.New(NotificationKind("reply"))
	NotifyAt      = enum.New(NotificationKind("at"))
	NotifyLike    = enum.New(NotificationKind("like"))
	NotifyDynamic = enum.New(NotificationKind("dynamic"))
	NotifySystem  = enum.New(NotificationKind("system"))
	NotifyPrivate = enum.New(NotificationKind("private"))
)

// Notification is a single inbox row of any kind. The origin and target id
// point at the content record the event happened on.
type Notification struct {
	SnowFlakeBase

	Kind NotificationKind `gorm:"index:idx_recipient_kind,priority:2"`

	RecipientID string `gorm:"index:idx_recipient_kind,priority:1"`
	Recipient   User   `gorm:"foreignKey:RecipientID"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Origin   Origin `gorm:"index:idx_origin_target,priority:1"`
	TargetID int64  `gorm:"index:idx_origin_target,priority:2"`

	// IsViewed starts true for silently delivered notifications.
	IsViewed bool

	// IsActive turns false when the event behind the notification is
	// retracted, such as a deleted comment or a cancelled vote.
	IsActive bool
}
