package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/forumix/backend/internal/middleware"
	"github.com/forumix/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	if err := server.loadConfig(ct); err != nil {
		return err
	}

	server.loadLogger()
	if err := server.loadDatabase(); err != nil {
		return err
	}

	if err := server.loadRedis(); err != nil {
		return err
	}

	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.AllowCors())
	s.router.AddCloser(middleware.Logger())

	// Auth API
	router.POST(s.router, "/register", s.authDomain.Register)
	router.POST(s.router, "/login", s.authDomain.Login)

	// These following APIs personalize the response when a token is present
	// but accept anonymous requests.
	optionalAuthRouter := s.router.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware())
	{
		// User API
		router.GET(optionalAuthRouter, "/getUser", s.userDomain.GetUser)
		router.GET(optionalAuthRouter, "/getFollowings", s.userDomain.GetFollowings)
		router.GET(optionalAuthRouter, "/getFollowers", s.userDomain.GetFollowers)

		// Article API
		router.GET(optionalAuthRouter, "/getArticle", s.articleDomain.Get)
		router.GET(optionalAuthRouter, "/getListArticle", s.articleDomain.GetList)
		router.GET(optionalAuthRouter, "/getListArticleComment", s.articleCommentDomain.GetList)

		// Column API
		router.GET(optionalAuthRouter, "/getColumn", s.columnDomain.Get)
		router.GET(optionalAuthRouter, "/getListColumn", s.columnDomain.GetList)
		router.GET(optionalAuthRouter, "/getListColumnComment", s.columnCommentDomain.GetList)

		// Issue API
		router.GET(optionalAuthRouter, "/getIssue", s.issueDomain.Get)
		router.GET(optionalAuthRouter, "/getListIssue", s.issueDomain.GetList)
		router.GET(optionalAuthRouter, "/getListIssueComment", s.issueDomain.GetComments)

		// Feed and statistic API
		router.GET(optionalAuthRouter, "/getFeed", s.feedDomain.Get)
		router.GET(optionalAuthRouter, "/getUserFeed", s.feedDomain.GetByUser)
		router.GET(optionalAuthRouter, "/getTrending", s.statisticDomain.GetTrending)

		// Poll API
		router.GET(optionalAuthRouter, "/getPoll", s.pollDomain.Get)
	}

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	authRouter.Before(middleware.MustAuthenticate())
	{
		// User API
		router.POST(authRouter, "/updateUser", s.userDomain.UpdateUser)
		router.POST(authRouter, "/follow", s.userDomain.Follow)
		router.POST(authRouter, "/unfollow", s.userDomain.Unfollow)
		router.POST(authRouter, "/block", s.userDomain.Block)
		router.POST(authRouter, "/unblock", s.userDomain.Unblock)
		router.GET(authRouter, "/getBlocks", s.userDomain.GetBlocks)
		router.POST(authRouter, "/sign", s.userDomain.Sign)

		// Article API
		router.POST(authRouter, "/createArticle", s.articleDomain.Create)
		router.POST(authRouter, "/updateArticle", s.articleDomain.Update)
		router.POST(authRouter, "/deleteArticle", s.articleDomain.Delete)
		router.POST(authRouter, "/saveArticleDraft", s.articleDomain.SaveDraft)
		router.GET(authRouter, "/getArticleDraft", s.articleDomain.GetDraft)
		router.POST(authRouter, "/createArticleComment", s.articleCommentDomain.Create)
		router.POST(authRouter, "/deleteArticleComment", s.articleCommentDomain.Delete)

		// Column API
		router.POST(authRouter, "/createColumn", s.columnDomain.Create)
		router.POST(authRouter, "/publishColumn", s.columnDomain.Publish)
		router.POST(authRouter, "/shareArticle", s.columnDomain.ShareArticle)
		router.POST(authRouter, "/deleteColumn", s.columnDomain.Delete)
		router.POST(authRouter, "/createColumnComment", s.columnCommentDomain.Create)
		router.POST(authRouter, "/deleteColumnComment", s.columnCommentDomain.Delete)

		// Issue API
		router.POST(authRouter, "/createIssue", s.issueDomain.Create)
		router.POST(authRouter, "/deleteIssue", s.issueDomain.Delete)
		router.POST(authRouter, "/createIssueComment", s.issueDomain.CreateComment)
		router.POST(authRouter, "/adoptIssueComment", s.issueDomain.AdoptComment)
		router.POST(authRouter, "/deleteIssueComment", s.issueDomain.DeleteComment)

		// Interaction API
		router.POST(authRouter, "/vote", s.interactionDomain.Vote)

		// Notification API
		router.GET(authRouter, "/getNotifications", s.notificationDomain.GetList)
		router.GET(authRouter, "/getLikeSummary", s.notificationDomain.GetLikeSummary)
		router.GET(authRouter, "/countUnviewedNotifications", s.notificationDomain.CountUnviewed)
		router.POST(authRouter, "/markNotificationsViewed", s.notificationDomain.MarkViewed)
		router.GET(authRouter, "/getMessageSetting", s.notificationDomain.GetSetting)
		router.POST(authRouter, "/updateMessageSetting", s.notificationDomain.UpdateSetting)

		// Poll API
		router.POST(authRouter, "/createPoll", s.pollDomain.Create)
		router.POST(authRouter, "/submitBallot", s.pollDomain.SubmitBallot)
	}
}
