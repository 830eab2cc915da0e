package main

import (
	"context"
	"fmt"

	"github.com/forumix/backend/config"
	"github.com/forumix/backend/internal/domain"
	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/domain/vote"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/logger"
	"github.com/forumix/backend/pkg/xcontext"
	"github.com/forumix/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (s *srv) loadConfig(ct *cli.Context) error {
	configs, err := config.Load(ct.String("config"))
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	s.configs = configs
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() error {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("cannot connect database: %w", err)
	}

	s.db = db
	return nil
}

func (s *srv) loadRedis() error {
	ctx := xcontext.WithConfigs(context.Background(), *s.configs)
	redisClient, err := xredis.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("cannot connect redis: %w", err)
	}

	s.redis = redisClient
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.contentRepo = repository.NewContentRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.viewRepo = repository.NewViewRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.messageSettingRepo = repository.NewMessageSettingRepository()
	s.dailyRepo = repository.NewDailyRepository()
	s.articleRepo = repository.NewArticleRepository()
	s.articleCommentRepo = repository.NewArticleCommentRepository()
	s.columnRepo = repository.NewColumnRepository()
	s.columnCommentRepo = repository.NewColumnCommentRepository()
	s.issueRepo = repository.NewIssueRepository()
	s.pollRepo = repository.NewPollRepository()
}

func (s *srv) loadDomains() {
	s.notifyEngine = notify.NewEngine(
		s.notificationRepo, s.messageSettingRepo, s.followRepo, s.userRepo)
	s.questLedger = quest.NewLedger(s.dailyRepo, s.userRepo)
	s.voteLedger = vote.NewLedger(
		s.voteRepo, s.contentRepo, s.userRepo, s.notifyEngine, s.questLedger)
	s.trending = statistic.NewTrending(s.redis)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.messageSettingRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followRepo, s.questLedger)
	s.articleDomain = domain.NewArticleDomain(
		s.articleRepo, s.articleCommentRepo, s.userRepo, s.viewRepo, s.contentRepo,
		s.voteLedger, s.questLedger, s.notifyEngine, s.trending)
	s.articleCommentDomain = domain.NewArticleCommentDomain(
		s.articleCommentRepo, s.articleRepo, s.userRepo, s.contentRepo,
		s.voteLedger, s.questLedger, s.notifyEngine)
	s.columnDomain = domain.NewColumnDomain(
		s.columnRepo, s.columnCommentRepo, s.articleRepo, s.userRepo, s.viewRepo,
		s.contentRepo, s.voteLedger, s.questLedger, s.notifyEngine, s.trending)
	s.columnCommentDomain = domain.NewColumnCommentDomain(
		s.columnCommentRepo, s.columnRepo, s.userRepo, s.contentRepo,
		s.voteLedger, s.questLedger, s.notifyEngine)
	s.issueDomain = domain.NewIssueDomain(
		s.issueRepo, s.userRepo, s.voteLedger, s.questLedger, s.notifyEngine)
	s.interactionDomain = domain.NewInteractionDomain(s.voteLedger, s.trending)
	s.notificationDomain = domain.NewNotificationDomain(
		s.notificationRepo, s.messageSettingRepo, s.contentRepo, s.userRepo)
	s.feedDomain = domain.NewFeedDomain(s.articleRepo, s.columnRepo, s.userRepo)
	s.pollDomain = domain.NewPollDomain(s.pollRepo, s.articleRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.trending, s.articleRepo, s.columnRepo)
}
