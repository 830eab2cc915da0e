package domain

import (
	"context"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/enum"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/htmlutil"
	"github.com/forumix/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetList(ctx context.Context, req *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	GetLikeSummary(ctx context.Context, req *model.GetLikeSummaryRequest) (*model.GetLikeSummaryResponse, error)
	CountUnviewed(ctx context.Context, req *model.CountUnviewedRequest) (*model.CountUnviewedResponse, error)
	MarkViewed(ctx context.Context, req *model.MarkViewedRequest) (*model.MarkViewedResponse, error)
	GetSetting(ctx context.Context, req *model.GetMessageSettingRequest) (*model.GetMessageSettingResponse, error)
	UpdateSetting(ctx context.Context, req *model.UpdateMessageSettingRequest) (*model.UpdateMessageSettingResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	settingRepo      repository.MessageSettingRepository
	contentRepo      repository.ContentRepository
	userRepo         repository.UserRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	settingRepo repository.MessageSettingRepository,
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
) *notificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		settingRepo:      settingRepo,
		contentRepo:      contentRepo,
		userRepo:         userRepo,
	}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	kind, err := enum.ToEnum[entity.NotificationKind](req.Kind)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid kind %s", req.Kind)
	}

	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	notifications, err := d.notificationRepo.GetList(ctx, repository.NotificationFilter{
		RecipientID: xcontext.RequestUserID(ctx),
		Kind:        kind,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	senders, err := d.sendersOf(ctx, notifications)
	if err != nil {
		return nil, err
	}

	summaryLength := xcontext.Configs(ctx).Content.SummaryLength
	result := []model.Notification{}
	for i := range notifications {
		n := &notifications[i]

		// A retracted target leaves the preview empty rather than failing
		// the inbox.
		preview, err := d.contentRepo.GetPreview(ctx, entity.ContentRef{
			Origin:   n.Origin,
			TargetID: n.TargetID,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get notification preview: %v", err)
			preview = ""
		}

		converted := model.ConvertNotification(
			n, senders[n.SenderID], htmlutil.Summary(preview, summaryLength))
		result = append(result, converted)
	}

	// Opening an inbox view marks the whole kind as viewed. The rows just
	// rendered keep their pre-read flag so the client can highlight them.
	err = d.notificationRepo.MarkViewed(ctx, xcontext.RequestUserID(ctx), kind)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark listed notifications viewed: %v", err)
	}

	return &model.GetNotificationsResponse{Notifications: result}, nil
}

// GetLikeSummary groups the recipient's like notifications by the content
// record they landed on. Rows come back newest first, so the first row of
// every group carries the latest sender.
func (d *notificationDomain) GetLikeSummary(
	ctx context.Context, req *model.GetLikeSummaryRequest,
) (*model.GetLikeSummaryResponse, error) {
	likes, err := d.notificationRepo.GetList(ctx, repository.NotificationFilter{
		RecipientID: xcontext.RequestUserID(ctx),
		Kind:        entity.NotifyLike,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get like notifications: %v", err)
		return nil, errorx.Unknown
	}

	senders, err := d.sendersOf(ctx, likes)
	if err != nil {
		return nil, err
	}

	summaryLength := xcontext.Configs(ctx).Content.SummaryLength
	order := []entity.ContentRef{}
	groups := map[entity.ContentRef]*model.LikeGroup{}
	for i := range likes {
		like := &likes[i]
		ref := entity.ContentRef{Origin: like.Origin, TargetID: like.TargetID}

		group, ok := groups[ref]
		if !ok {
			preview, err := d.contentRepo.GetPreview(ctx, ref)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get like preview: %v", err)
				preview = ""
			}

			group = &model.LikeGroup{
				Origin:       string(like.Origin),
				TargetID:     like.TargetID,
				Preview:      htmlutil.Summary(preview, summaryLength),
				LatestSender: model.ConvertShortUser(senders[like.SenderID]),
				LatestAt:     like.UpdatedAt.Format(model.DefaultTimeLayout),
			}

			groups[ref] = group
			order = append(order, ref)
		}

		group.Total++
		if !like.IsViewed {
			group.Unviewed++
		}
	}

	result := []model.LikeGroup{}
	for _, ref := range order {
		result = append(result, *groups[ref])
	}

	return &model.GetLikeSummaryResponse{Groups: result}, nil
}

func (d *notificationDomain) CountUnviewed(
	ctx context.Context, req *model.CountUnviewedRequest,
) (*model.CountUnviewedResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	resp := &model.CountUnviewedResponse{}
	for _, target := range []struct {
		kind  entity.NotificationKind
		count *int64
	}{
		{entity.NotifyReply, &resp.Reply},
		{entity.NotifyAt, &resp.At},
		{entity.NotifyLike, &resp.Like},
		{entity.NotifyDynamic, &resp.Dynamic},
		{entity.NotifySystem, &resp.System},
		{entity.NotifyPrivate, &resp.Private},
	} {
		count, err := d.notificationRepo.CountUnviewed(ctx, userID, target.kind)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count unviewed notifications: %v", err)
			return nil, errorx.Unknown
		}

		*target.count = count
	}

	return resp, nil
}

func (d *notificationDomain) MarkViewed(
	ctx context.Context, req *model.MarkViewedRequest,
) (*model.MarkViewedResponse, error) {
	kind, err := enum.ToEnum[entity.NotificationKind](req.Kind)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid kind %s", req.Kind)
	}

	if err := d.notificationRepo.MarkViewed(ctx, xcontext.RequestUserID(ctx), kind); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications viewed: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkViewedResponse{}, nil
}

func (d *notificationDomain) GetSetting(
	ctx context.Context, req *model.GetMessageSettingRequest,
) (*model.GetMessageSettingResponse, error) {
	setting, err := d.settingRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get message setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMessageSettingResponse{
		Reply:   string(setting.Reply),
		At:      string(setting.At),
		Like:    string(setting.Like),
		Dynamic: string(setting.Dynamic),
		System:  string(setting.System),
		Private: string(setting.Private),
	}, nil
}

func (d *notificationDomain) UpdateSetting(
	ctx context.Context, req *model.UpdateMessageSettingRequest,
) (*model.UpdateMessageSettingResponse, error) {
	setting := &entity.MessageSetting{
		UserID:    xcontext.RequestUserID(ctx),
		UpdatedAt: time.Now(),
	}

	for _, field := range []struct {
		value string
		level *entity.PreferenceLevel
	}{
		{req.Reply, &setting.Reply},
		{req.At, &setting.At},
		{req.Like, &setting.Like},
		{req.Dynamic, &setting.Dynamic},
		{req.System, &setting.System},
		{req.Private, &setting.Private},
	} {
		level, err := enum.ToEnum[entity.PreferenceLevel](field.value)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid preference %s", field.value)
		}

		*field.level = level
	}

	if err := d.settingRepo.Upsert(ctx, setting); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update message setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMessageSettingResponse{}, nil
}

func (d *notificationDomain) sendersOf(
	ctx context.Context, notifications []entity.Notification,
) (map[string]*entity.User, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, n := range notifications {
		if !seen[n.SenderID] {
			seen[n.SenderID] = true
			ids = append(ids, n.SenderID)
		}
	}

	if len(ids) == 0 {
		return map[string]*entity.User{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get senders: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]*entity.User{}
	for i := range users {
		result[users[i].ID] = &users[i]
	}

	return result, nil
}
