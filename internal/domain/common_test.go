package domain

import (
	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/domain/vote"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/testutil"
)

func newTestEngines() (*notify.Engine, *quest.Ledger, *vote.Ledger) {
	userRepo := repository.NewUserRepository()
	notifyEngine := notify.NewEngine(
		repository.NewNotificationRepository(),
		repository.NewMessageSettingRepository(),
		repository.NewFollowRepository(),
		userRepo,
	)
	questLedger := quest.NewLedger(repository.NewDailyRepository(), userRepo)
	voteLedger := vote.NewLedger(
		repository.NewVoteRepository(),
		repository.NewContentRepository(),
		userRepo,
		notifyEngine,
		questLedger,
	)

	return notifyEngine, questLedger, voteLedger
}

func newTestTrending() *statistic.Trending {
	return statistic.NewTrending(testutil.NewMockRedisClient())
}

func newTestArticleDomain(trending *statistic.Trending) ArticleDomain {
	notifyEngine, questLedger, voteLedger := newTestEngines()
	return NewArticleDomain(
		repository.NewArticleRepository(),
		repository.NewArticleCommentRepository(),
		repository.NewUserRepository(),
		repository.NewViewRepository(),
		repository.NewContentRepository(),
		voteLedger,
		questLedger,
		notifyEngine,
		trending,
	)
}

func newTestArticleCommentDomain() ArticleCommentDomain {
	notifyEngine, questLedger, voteLedger := newTestEngines()
	return NewArticleCommentDomain(
		repository.NewArticleCommentRepository(),
		repository.NewArticleRepository(),
		repository.NewUserRepository(),
		repository.NewContentRepository(),
		voteLedger,
		questLedger,
		notifyEngine,
	)
}

func newTestColumnDomain(trending *statistic.Trending) ColumnDomain {
	notifyEngine, questLedger, voteLedger := newTestEngines()
	return NewColumnDomain(
		repository.NewColumnRepository(),
		repository.NewColumnCommentRepository(),
		repository.NewArticleRepository(),
		repository.NewUserRepository(),
		repository.NewViewRepository(),
		repository.NewContentRepository(),
		voteLedger,
		questLedger,
		notifyEngine,
		trending,
	)
}

func newTestIssueDomain() IssueDomain {
	notifyEngine, questLedger, voteLedger := newTestEngines()
	return NewIssueDomain(
		repository.NewIssueRepository(),
		repository.NewUserRepository(),
		voteLedger,
		questLedger,
		notifyEngine,
	)
}
