package notify

import (
	"context"
	"errors"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/idutil"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Engine delivers notifications according to the recipient's per-kind
// preference and block relations. All methods expect to run inside the
// caller's transaction, so a failed interaction never leaves a notification
// behind.
type Engine struct {
	notificationRepo repository.NotificationRepository
	settingRepo      repository.MessageSettingRepository
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
}

func NewEngine(
	notificationRepo repository.NotificationRepository,
	settingRepo repository.MessageSettingRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *Engine {
	return &Engine{
		notificationRepo: notificationRepo,
		settingRepo:      settingRepo,
		followRepo:       followRepo,
		userRepo:         userRepo,
	}
}

// SendReply notifies the author of the content a comment was created on.
func (e *Engine) SendReply(
	ctx context.Context, senderID, recipientID string, ref entity.ContentRef,
) error {
	return e.deliver(ctx, entity.NotifyReply, senderID, recipientID, ref)
}

// SendAt notifies every mentioned user. Unknown names are skipped rather
// than failing the whole mention list.
func (e *Engine) SendAt(
	ctx context.Context, senderID string, names []string, ref entity.ContentRef,
) error {
	for _, name := range names {
		user, err := e.userRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return err
		}

		if err := e.deliver(ctx, entity.NotifyAt, senderID, user.ID, ref); err != nil {
			return err
		}
	}

	return nil
}

// SendLike records an up vote notification. One sender holds at most one
// like row per content record: a repeated up vote reactivates and resurfaces
// the existing row instead of creating another one.
func (e *Engine) SendLike(
	ctx context.Context, senderID, recipientID string, ref entity.ContentRef,
) error {
	existing, err := e.notificationRepo.GetLike(ctx, senderID, ref)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return e.deliver(ctx, entity.NotifyLike, senderID, recipientID, ref)
	}

	decision, err := e.decide(ctx, entity.NotifyLike, senderID, recipientID)
	if err != nil {
		return err
	}

	if decision.skip {
		return nil
	}

	return e.notificationRepo.UpdateLike(ctx, existing.ID, true, decision.isViewed)
}

// RetractLike deactivates the sender's like row when the up vote is
// cancelled or flipped to a down vote. It is a no-op without a like row.
func (e *Engine) RetractLike(ctx context.Context, senderID string, ref entity.ContentRef) error {
	return e.notificationRepo.DeactivateLikeBySender(ctx, senderID, ref)
}

// SendDynamic fans a publication out to the author's followers. Followers
// who blocked the author or forbade dynamic notifications receive nothing.
func (e *Engine) SendDynamic(ctx context.Context, authorID string, ref entity.ContentRef) error {
	followerIDs, err := e.followRepo.FollowerIDs(ctx, authorID)
	if err != nil {
		return err
	}

	if len(followerIDs) == 0 {
		return nil
	}

	blockedBy, err := e.followRepo.BlockedBySet(ctx, authorID)
	if err != nil {
		return err
	}

	settings, err := e.settingRepo.GetByUserIDs(ctx, followerIDs)
	if err != nil {
		return err
	}

	preferences := map[string]entity.PreferenceLevel{}
	for _, s := range settings {
		preferences[s.UserID] = s.Dynamic
	}

	notifications := []*entity.Notification{}
	for _, followerID := range followerIDs {
		if blockedBy[followerID] {
			continue
		}

		pref, ok := preferences[followerID]
		if !ok {
			pref = entity.PreferenceAlert
		}

		if pref == entity.PreferenceForbid {
			continue
		}

		notifications = append(notifications, &entity.Notification{
			SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
			Kind:          entity.NotifyDynamic,
			RecipientID:   followerID,
			SenderID:      authorID,
			Origin:        ref.Origin,
			TargetID:      ref.TargetID,
			IsViewed:      pref == entity.PreferenceSilent,
			IsActive:      true,
		})
	}

	return e.notificationRepo.CreateList(ctx, notifications)
}

// Retract deactivates every notification pointing at a content record. It
// runs when the record is deleted and is safe to repeat.
func (e *Engine) Retract(ctx context.Context, ref entity.ContentRef) error {
	return e.notificationRepo.DeactivateByTarget(ctx, ref)
}

type deliverDecision struct {
	skip     bool
	isViewed bool
}

func (e *Engine) decide(
	ctx context.Context, kind entity.NotificationKind, senderID, recipientID string,
) (deliverDecision, error) {
	if senderID == recipientID {
		return deliverDecision{skip: true}, nil
	}

	setting, err := e.settingRepo.Get(ctx, recipientID)
	if err != nil {
		return deliverDecision{}, err
	}

	pref := setting.Preference(kind)
	if pref == entity.PreferenceForbid {
		return deliverDecision{skip: true}, nil
	}

	// Mentions and likes from a blocked user are suppressed entirely.
	// Replies still arrive: the recipient's content was commented on either
	// way.
	if kind == entity.NotifyAt || kind == entity.NotifyLike {
		blocked, err := e.followRepo.BlockSet(ctx, recipientID)
		if err != nil {
			return deliverDecision{}, err
		}

		if blocked[senderID] {
			return deliverDecision{skip: true}, nil
		}
	}

	switch pref {
	case entity.PreferenceSilent:
		return deliverDecision{isViewed: true}, nil

	case entity.PreferenceFollowed:
		// Alert only when the recipient follows the sender and has not
		// blocked them, otherwise deliver silently.
		following, err := e.followRepo.FollowingSet(ctx, recipientID)
		if err != nil {
			return deliverDecision{}, err
		}

		blocked, err := e.followRepo.BlockSet(ctx, recipientID)
		if err != nil {
			return deliverDecision{}, err
		}

		alert := following[senderID] && !blocked[senderID]
		return deliverDecision{isViewed: !alert}, nil
	}

	return deliverDecision{}, nil
}

func (e *Engine) deliver(
	ctx context.Context, kind entity.NotificationKind, senderID, recipientID string, ref entity.ContentRef,
) error {
	decision, err := e.decide(ctx, kind, senderID, recipientID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decide notification delivery: %v", err)
		return err
	}

	if decision.skip {
		return nil
	}

	return e.notificationRepo.Create(ctx, &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Kind:          kind,
		RecipientID:   recipientID,
		SenderID:      senderID,
		Origin:        ref.Origin,
		TargetID:      ref.TargetID,
		IsViewed:      decision.isViewed,
		IsActive:      true,
	})
}
