package model

import (
	"time"

	"github.com/forumix/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ShortUser:    ConvertShortUser(user),
		Introduction: user.Introduction,
		FollowingNum: user.FollowingNum,
		FollowerNum:  user.FollowerNum,
		UpNum:        user.UpNum,
		Experience:   user.Experience,
	}
}

func ConvertArticle(article *entity.Article, author *entity.User, myVote string) Article {
	if article == nil {
		return Article{}
	}

	return Article{
		ID:          article.ID,
		Author:      ConvertShortUser(author),
		Board:       article.Board,
		Title:       article.Title,
		Content:     article.Content,
		Summary:     article.Summary,
		UpNum:       article.UpNum,
		DownNum:     article.DownNum,
		CommentNum:  article.CommentNum,
		ViewNum:     article.ViewNum,
		CreatedAt:   article.CreatedAt.Format(DefaultTimeLayout),
		CommentTime: article.CommentTime.Format(DefaultTimeLayout),
		MyVote:      myVote,
	}
}

func ConvertColumn(column *entity.Column, author *entity.User, myVote string) Column {
	if column == nil {
		return Column{}
	}

	return Column{
		ID:         column.ID,
		Author:     ConvertShortUser(author),
		Title:      column.Title,
		Content:    column.Content,
		Summary:    column.Summary,
		Cover:      column.Cover,
		IsDraft:    column.IsDraft,
		IsShared:   column.IsShared,
		UpNum:      column.UpNum,
		DownNum:    column.DownNum,
		CommentNum: column.CommentNum,
		ViewNum:    column.ViewNum,
		CreatedAt:  column.CreatedAt.Format(DefaultTimeLayout),
		MyVote:     myVote,
	}
}

func ConvertIssue(issue *entity.Issue, author *entity.User) Issue {
	if issue == nil {
		return Issue{}
	}

	return Issue{
		ID:               issue.ID,
		Author:           ConvertShortUser(author),
		Title:            issue.Title,
		Content:          issue.Content,
		AdoptedCommentID: issue.AdoptedCommentID,
		CommentNum:       issue.CommentNum,
		ViewNum:          issue.ViewNum,
		CreatedAt:        issue.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertIssueComment(comment *entity.IssueComment, author *entity.User, myVote string) IssueComment {
	if comment == nil {
		return IssueComment{}
	}

	return IssueComment{
		ID:        comment.ID,
		Author:    ConvertShortUser(author),
		Content:   comment.Content,
		UpNum:     comment.UpNum,
		DownNum:   comment.DownNum,
		IsAdopted: comment.IsAdopted,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
		MyVote:    myVote,
	}
}

func ConvertNotification(notification *entity.Notification, sender *entity.User, preview string) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:        notification.ID,
		Kind:      string(notification.Kind),
		Sender:    ConvertShortUser(sender),
		Origin:    string(notification.Origin),
		TargetID:  notification.TargetID,
		Preview:   preview,
		IsViewed:  notification.IsViewed,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: notification.UpdatedAt.Format(DefaultTimeLayout),
	}
}

// VoteState renders the tri-state vote of a user on a content record.
func VoteState(vote *entity.Vote) string {
	if vote == nil {
		return ""
	}

	if vote.IsUp {
		return "up"
	}

	return "down"
}
