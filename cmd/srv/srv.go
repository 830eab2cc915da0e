package main

import (
	"net/http"

	"github.com/forumix/backend/config"
	"github.com/forumix/backend/internal/domain"
	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/domain/vote"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/logger"
	"github.com/forumix/backend/pkg/router"
	"github.com/forumix/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB
	redis   xredis.Client

	userRepo           repository.UserRepository
	followRepo         repository.FollowRepository
	contentRepo        repository.ContentRepository
	voteRepo           repository.VoteRepository
	viewRepo           repository.ViewRepository
	notificationRepo   repository.NotificationRepository
	messageSettingRepo repository.MessageSettingRepository
	dailyRepo          repository.DailyRepository
	articleRepo        repository.ArticleRepository
	articleCommentRepo repository.ArticleCommentRepository
	columnRepo         repository.ColumnRepository
	columnCommentRepo  repository.ColumnCommentRepository
	issueRepo          repository.IssueRepository
	pollRepo           repository.PollRepository

	notifyEngine *notify.Engine
	questLedger  *quest.Ledger
	voteLedger   *vote.Ledger
	trending     *statistic.Trending

	authDomain           domain.AuthDomain
	userDomain           domain.UserDomain
	articleDomain        domain.ArticleDomain
	articleCommentDomain domain.ArticleCommentDomain
	columnDomain         domain.ColumnDomain
	columnCommentDomain  domain.ColumnCommentDomain
	issueDomain          domain.IssueDomain
	interactionDomain    domain.InteractionDomain
	notificationDomain   domain.NotificationDomain
	feedDomain           domain.FeedDomain
	pollDomain           domain.PollDomain
	statisticDomain      domain.StatisticDomain

	router *router.Router
	server *http.Server
}
