package migration

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Follow{},
		&entity.Blacklist{},
		&entity.Article{},
		&entity.ArticleDraft{},
		&entity.ArticleComment{},
		&entity.Column{},
		&entity.ColumnComment{},
		&entity.Issue{},
		&entity.IssueComment{},
		&entity.Vote{},
		&entity.View{},
		&entity.Notification{},
		&entity.MessageSetting{},
		&entity.Daily{},
		&entity.Poll{},
		&entity.PollOption{},
		&entity.PollBallot{},
	)
}
