package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetOnBlog(ctx context.Context, id, blogID string) (*models.Comment, error) {
	args := m.Called(ctx, id, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, blogID string, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, blogID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListChildren(ctx context.Context, parentIDs []string, includeDeleted bool) ([]models.Comment, error) {
	args := m.Called(ctx, parentIDs, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ChildIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, blogID string, ids []string) error {
	args := m.Called(ctx, blogID, ids)
	return args.Error(0)
}

func (m *MockCommentRepository) HardDelete(ctx context.Context, blogID string, ids []string) error {
	args := m.Called(ctx, blogID, ids)
	return args.Error(0)
}

func (m *MockCommentRepository) ListAdmin(ctx context.Context, filters repository.AdminCommentFilters, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockCommentRepository) RemoveLike(ctx context.Context, commentID, userID string) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) CountLikes(ctx context.Context, commentID string) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) LikeCounts(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCommentRepository) LikedByUser(ctx context.Context, commentIDs []string, userID string) (map[string]bool, error) {
	args := m.Called(ctx, commentIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockBlogRepository mocks the BlogRepository interface
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetPublished(ctx context.Context, id string) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListPublished(ctx context.Context, filters repository.BlogFilters, page, pageSize int) ([]models.Blog, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.Blog, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) Featured(ctx context.Context, limit int) ([]models.Blog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLikeRepository mocks the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, blogID, userID string) (bool, int64, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

// MockInteractionRepository mocks the InteractionRepository interface
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) AggregateByBlog(ctx context.Context) ([]repository.BlogStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BlogStats), args.Error(1)
}

func (m *MockInteractionRepository) AggregateForBlog(ctx context.Context, blogID string) (*repository.BlogStats, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BlogStats), args.Error(1)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSubscriberRepository mocks the SubscriberRepository interface
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLoginLogRepository mocks the LoginLogRepository interface
type MockLoginLogRepository struct {
	mock.Mock
}

func (m *MockLoginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoginLog), args.Error(1)
}

// MockNotifier mocks the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BlogPublished(blog *models.Blog, authorName string) {
	m.Called(blog, authorName)
}

func (m *MockNotifier) CommentReplied(parent *models.Comment, reply *models.Comment, replierName string) {
	m.Called(parent, reply, replierName)
}

func (m *MockNotifier) CommentLiked(comment *models.Comment, likerID, likerName string) {
	m.Called(comment, likerID, likerName)
}

// MockTranslator mocks the Translator interface
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) ToTamil(ctx context.Context, text string) string {
	args := m.Called(ctx, text)
	return args.String(0)
}

// MockNewsletter mocks the Newsletter interface
type MockNewsletter struct {
	mock.Mock
}

func (m *MockNewsletter) SendNewsletter(recipients []string, blogTitle, blogSlug string) error {
	args := m.Called(recipients, blogTitle, blogSlug)
	return args.Error(0)
}
