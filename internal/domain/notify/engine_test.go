package notify

import (
	"context"
	"testing"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(
		repository.NewNotificationRepository(),
		repository.NewMessageSettingRepository(),
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
	)
}

func inbox(
	t *testing.T, ctx context.Context, recipientID string, kind entity.NotificationKind,
) []entity.Notification {
	t.Helper()
	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: recipientID,
		Kind:        kind,
		Limit:       100,
	})
	require.NoError(t, err)
	return rows
}

func Test_Engine_SendReply_Preferences(t *testing.T) {
	engine := newTestEngine()

	for _, tc := range []struct {
		name       string
		preference entity.PreferenceLevel
		delivered  bool
		isViewed   bool
	}{
		{name: "alert delivers unread", preference: entity.PreferenceAlert, delivered: true},
		{name: "silent delivers viewed", preference: entity.PreferenceSilent, delivered: true, isViewed: true},
		{name: "forbid drops", preference: entity.PreferenceForbid},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			sender := testutil.SampleUser(ctx, nil)
			recipient := testutil.SampleUser(ctx, nil)
			article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: recipient.ID})

			err := repository.NewMessageSettingRepository().Upsert(ctx, &entity.MessageSetting{
				UserID:    recipient.ID,
				UpdatedAt: time.Now(),
				Reply:     tc.preference,
				At:        entity.PreferenceAlert,
				Like:      entity.PreferenceAlert,
				Dynamic:   entity.PreferenceAlert,
			})
			require.NoError(t, err)

			ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
			require.NoError(t, engine.SendReply(ctx, sender.ID, recipient.ID, ref))

			rows := inbox(t, ctx, recipient.ID, entity.NotifyReply)
			if !tc.delivered {
				require.Empty(t, rows)
				return
			}

			require.Len(t, rows, 1)
			require.Equal(t, sender.ID, rows[0].SenderID)
			require.Equal(t, tc.isViewed, rows[0].IsViewed)
		})
	}
}

func Test_Engine_SendReply_SkipsSelf(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: user.ID})

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	require.NoError(t, engine.SendReply(ctx, user.ID, user.ID, ref))
	require.Empty(t, inbox(t, ctx, user.ID, entity.NotifyReply))
}

func Test_Engine_FollowedPreference(t *testing.T) {
	ctx := testutil.MockContext()
	followed := testutil.SampleUser(ctx, nil)
	stranger := testutil.SampleUser(ctx, nil)
	recipient := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: recipient.ID})

	err := repository.NewMessageSettingRepository().Upsert(ctx, &entity.MessageSetting{
		UserID:    recipient.ID,
		UpdatedAt: time.Now(),
		Reply:     entity.PreferenceFollowed,
		At:        entity.PreferenceAlert,
		Like:      entity.PreferenceAlert,
		Dynamic:   entity.PreferenceAlert,
	})
	require.NoError(t, err)

	err = repository.NewFollowRepository().Create(ctx, &entity.Follow{
		CreatedAt:   time.Now(),
		FollowerID:  recipient.ID,
		FollowingID: followed.ID,
	})
	require.NoError(t, err)

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	require.NoError(t, engine.SendReply(ctx, followed.ID, recipient.ID, ref))
	require.NoError(t, engine.SendReply(ctx, stranger.ID, recipient.ID, ref))

	rows := inbox(t, ctx, recipient.ID, entity.NotifyReply)
	require.Len(t, rows, 2)

	byID := map[string]entity.Notification{}
	for _, row := range rows {
		byID[row.SenderID] = row
	}

	// Followed senders alert, everyone else arrives silently.
	require.False(t, byID[followed.ID].IsViewed)
	require.True(t, byID[stranger.ID].IsViewed)
}

func Test_Engine_BlockSuppressesMentionsAndLikes(t *testing.T) {
	ctx := testutil.MockContext()
	sender := testutil.SampleUser(ctx, nil)
	recipient := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: recipient.ID})

	err := repository.NewFollowRepository().CreateBlock(ctx, &entity.Blacklist{
		CreatedAt: time.Now(),
		UserID:    recipient.ID,
		TargetID:  sender.ID,
	})
	require.NoError(t, err)

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	require.NoError(t, engine.SendAt(ctx, sender.ID, []string{recipient.Name}, ref))
	require.NoError(t, engine.SendLike(ctx, sender.ID, recipient.ID, ref))
	require.NoError(t, engine.SendReply(ctx, sender.ID, recipient.ID, ref))

	require.Empty(t, inbox(t, ctx, recipient.ID, entity.NotifyAt))
	require.Empty(t, inbox(t, ctx, recipient.ID, entity.NotifyLike))

	// A reply still arrives, the recipient's content was commented on either
	// way.
	require.Len(t, inbox(t, ctx, recipient.ID, entity.NotifyReply), 1)
}

func Test_Engine_SendAt_SkipsUnknownNames(t *testing.T) {
	ctx := testutil.MockContext()
	sender := testutil.SampleUser(ctx, nil)
	mentioned := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, nil)

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	err := engine.SendAt(ctx, sender.ID, []string{"no-such-user", mentioned.Name}, ref)
	require.NoError(t, err)

	require.Len(t, inbox(t, ctx, mentioned.ID, entity.NotifyAt), 1)
}

func Test_Engine_SendLike_ReactivatesSingleRow(t *testing.T) {
	ctx := testutil.MockContext()
	sender := testutil.SampleUser(ctx, nil)
	recipient := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: recipient.ID})

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	require.NoError(t, engine.SendLike(ctx, sender.ID, recipient.ID, ref))

	first, err := repository.NewNotificationRepository().GetLike(ctx, sender.ID, ref)
	require.NoError(t, err)
	require.True(t, first.IsActive)

	require.NoError(t, engine.RetractLike(ctx, sender.ID, ref))

	retracted, err := repository.NewNotificationRepository().GetLike(ctx, sender.ID, ref)
	require.NoError(t, err)
	require.False(t, retracted.IsActive)

	// A repeated up vote reactivates the existing row instead of creating a
	// second one.
	require.NoError(t, engine.SendLike(ctx, sender.ID, recipient.ID, ref))

	again, err := repository.NewNotificationRepository().GetLike(ctx, sender.ID, ref)
	require.NoError(t, err)
	require.True(t, again.IsActive)
	require.Equal(t, first.ID, again.ID)

	require.Len(t, inbox(t, ctx, recipient.ID, entity.NotifyLike), 1)
}

func Test_Engine_SendDynamic(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	follower := testutil.SampleUser(ctx, nil)
	silentFollower := testutil.SampleUser(ctx, nil)
	forbidFollower := testutil.SampleUser(ctx, nil)
	blockerFollower := testutil.SampleUser(ctx, nil)
	column := testutil.SampleColumn(ctx, &entity.Column{AuthorID: author.ID})

	followRepo := repository.NewFollowRepository()
	for _, id := range []string{follower.ID, silentFollower.ID, forbidFollower.ID, blockerFollower.ID} {
		err := followRepo.Create(ctx, &entity.Follow{
			CreatedAt:   time.Now(),
			FollowerID:  id,
			FollowingID: author.ID,
		})
		require.NoError(t, err)
	}

	err := followRepo.CreateBlock(ctx, &entity.Blacklist{
		CreatedAt: time.Now(),
		UserID:    blockerFollower.ID,
		TargetID:  author.ID,
	})
	require.NoError(t, err)

	settingRepo := repository.NewMessageSettingRepository()
	for _, s := range []struct {
		userID string
		level  entity.PreferenceLevel
	}{
		{userID: silentFollower.ID, level: entity.PreferenceSilent},
		{userID: forbidFollower.ID, level: entity.PreferenceForbid},
	} {
		err := settingRepo.Upsert(ctx, &entity.MessageSetting{
			UserID:    s.userID,
			UpdatedAt: time.Now(),
			Reply:     entity.PreferenceAlert,
			At:        entity.PreferenceAlert,
			Like:      entity.PreferenceAlert,
			Dynamic:   s.level,
		})
		require.NoError(t, err)
	}

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginColumn, TargetID: column.ID}
	require.NoError(t, engine.SendDynamic(ctx, author.ID, ref))

	rows := inbox(t, ctx, follower.ID, entity.NotifyDynamic)
	require.Len(t, rows, 1)
	require.False(t, rows[0].IsViewed)

	rows = inbox(t, ctx, silentFollower.ID, entity.NotifyDynamic)
	require.Len(t, rows, 1)
	require.True(t, rows[0].IsViewed)

	require.Empty(t, inbox(t, ctx, forbidFollower.ID, entity.NotifyDynamic))
	require.Empty(t, inbox(t, ctx, blockerFollower.ID, entity.NotifyDynamic))
}

func Test_Engine_Retract_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	sender := testutil.SampleUser(ctx, nil)
	recipient := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: recipient.ID})

	engine := newTestEngine()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	require.NoError(t, engine.SendReply(ctx, sender.ID, recipient.ID, ref))
	require.NoError(t, engine.SendLike(ctx, sender.ID, recipient.ID, ref))

	require.NoError(t, engine.Retract(ctx, ref))
	require.NoError(t, engine.Retract(ctx, ref))

	require.Empty(t, inbox(t, ctx, recipient.ID, entity.NotifyReply))
	require.Empty(t, inbox(t, ctx, recipient.ID, entity.NotifyLike))
}
