package entity

import "github.com/forumix/backend/pkg/enum"

// Origin identifies which content table an interaction points at. Votes,
// comments, and notifications carry an origin plus a target id instead of a
// foreign key per table.
type Origin string

var (
	OriginArticle        = enum.New(Origin("bbs_article"))
	OriginArticleComment = enum.New(Origin("bbs_comment"))
	OriginColumn         = enum.New(Origin("special_column"))
	OriginColumnComment  = enum.New(Origin("special_comment"))
	OriginIssueComment   = enum.New(Origin("issue_comment"))
)

// ContentRef addresses one content record of any origin.
type ContentRef struct {
	Origin   Origin
	TargetID int64
}
