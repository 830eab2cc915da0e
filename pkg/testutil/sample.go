package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/idutil"
	"github.com/google/uuid"
)

// SampleUser creates a user in database with randomized fields. Non-zero
// fields of init overwrite the sample before it is saved.
func SampleUser(ctx context.Context, init *entity.User) entity.User {
	sample := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           uuid.NewString(),
		Phone:          uuid.NewString(),
		HashedPassword: "not-a-real-hash",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleArticle(ctx context.Context, init *entity.Article) entity.Article {
	sample := &entity.Article{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Board:         "general",
		Title:         uuid.NewString(),
		Content:       "<p>sample content</p>",
		Summary:       "sample content",
		CommentTime:   time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.AuthorID == "" {
		sample.AuthorID = SampleUser(ctx, nil).ID
	}

	if err := repository.NewArticleRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleColumn(ctx context.Context, init *entity.Column) entity.Column {
	sample := &entity.Column{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Title:         uuid.NewString(),
		Content:       "<p>sample content</p>",
		Summary:       "sample content",
		CommentTime:   time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.AuthorID == "" {
		sample.AuthorID = SampleUser(ctx, nil).ID
	}

	if err := repository.NewColumnRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleArticleComment(ctx context.Context, init *entity.ArticleComment) entity.ArticleComment {
	sample := &entity.ArticleComment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Content:       "sample comment",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.AuthorID == "" {
		sample.AuthorID = SampleUser(ctx, nil).ID
	}

	if sample.ArticleID == 0 {
		sample.ArticleID = SampleArticle(ctx, nil).ID
	}

	if err := repository.NewArticleCommentRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleIssue(ctx context.Context, init *entity.Issue) entity.Issue {
	sample := &entity.Issue{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Title:         uuid.NewString(),
		Content:       "sample issue",
		CommentTime:   time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.AuthorID == "" {
		sample.AuthorID = SampleUser(ctx, nil).ID
	}

	if err := repository.NewIssueRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
