package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"karkandu/internal/apperr"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

func newCommentService() (*MockCommentRepository, *MockBlogRepository, *MockUserRepository, *MockNotifier, CommentService) {
	comments := new(MockCommentRepository)
	blogs := new(MockBlogRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotifier)
	svc := NewCommentService(comments, blogs, users, notifier)
	return comments, blogs, users, notifier, svc
}

func TestAddComment_Success(t *testing.T) {
	comments, blogs, users, _, svc := newCommentService()

	blogID := uuid.New().String()
	userID := uuid.New().String()

	blogs.On("GetPublished", mock.Anything, blogID).Return(&models.Blog{ID: blogID, IsPublished: true}, nil)
	users.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID, Name: "Anbu"}, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	resp, err := svc.Add(context.Background(), userID, dto.CreateCommentDTO{
		BlogID:  blogID,
		Content: "  மிகவும் அருமையான பதிவு  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "மிகவும் அருமையான பதிவு", resp.Content)
	assert.Equal(t, "Anbu", resp.User.Name)
	assert.Nil(t, resp.ParentID)
	comments.AssertExpectations(t)
	blogs.AssertExpectations(t)
}

func TestAddComment_ContentTooShort(t *testing.T) {
	_, _, _, _, svc := newCommentService()

	_, err := svc.Add(context.Background(), uuid.New().String(), dto.CreateCommentDTO{
		BlogID:  uuid.New().String(),
		Content: " a ",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAddComment_ContentTooLong(t *testing.T) {
	_, _, _, _, svc := newCommentService()

	_, err := svc.Add(context.Background(), uuid.New().String(), dto.CreateCommentDTO{
		BlogID:  uuid.New().String(),
		Content: strings.Repeat("x", 1001),
	})

	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAddComment_MalformedBlogID(t *testing.T) {
	_, _, _, _, svc := newCommentService()

	_, err := svc.Add(context.Background(), uuid.New().String(), dto.CreateCommentDTO{
		BlogID:  "not-a-uuid",
		Content: "valid content",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAddComment_BlogNotPublished(t *testing.T) {
	_, blogs, _, _, svc := newCommentService()

	blogID := uuid.New().String()
	blogs.On("GetPublished", mock.Anything, blogID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(context.Background(), uuid.New().String(), dto.CreateCommentDTO{
		BlogID:  blogID,
		Content: "valid content",
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAddComment_ReplyNotifiesParentOwner(t *testing.T) {
	comments, blogs, users, notifier, svc := newCommentService()

	blogID := uuid.New().String()
	parentID := uuid.New().String()
	ownerID := uuid.New().String()
	replierID := uuid.New().String()

	parent := &models.Comment{ID: parentID, BlogID: blogID, UserID: ownerID, Content: "first"}

	blogs.On("GetPublished", mock.Anything, blogID).Return(&models.Blog{ID: blogID, IsPublished: true}, nil)
	comments.On("GetOnBlog", mock.Anything, parentID, blogID).Return(parent, nil)
	users.On("FindByID", mock.Anything, replierID).Return(&models.User{ID: replierID, Name: "Kavi"}, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)
	notifier.On("CommentReplied", parent, mock.AnythingOfType("*models.Comment"), "Kavi").Return()

	resp, err := svc.Add(context.Background(), replierID, dto.CreateCommentDTO{
		BlogID:          blogID,
		Content:         "well said",
		ParentCommentID: parentID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp.ParentID)
	assert.Equal(t, parentID, *resp.ParentID)
	notifier.AssertExpectations(t)
}

func TestAddComment_ParentOnDifferentBlog(t *testing.T) {
	comments, blogs, _, notifier, svc := newCommentService()

	blogID := uuid.New().String()
	parentID := uuid.New().String()

	blogs.On("GetPublished", mock.Anything, blogID).Return(&models.Blog{ID: blogID, IsPublished: true}, nil)
	comments.On("GetOnBlog", mock.Anything, parentID, blogID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(context.Background(), uuid.New().String(), dto.CreateCommentDTO{
		BlogID:          blogID,
		Content:         "crossing blogs",
		ParentCommentID: parentID,
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	notifier.AssertNotCalled(t, "CommentReplied", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	comments, _, users, notifier, svc := newCommentService()

	commentID := uuid.New().String()
	ownerID := uuid.New().String()
	likerID := uuid.New().String()
	comment := &models.Comment{ID: commentID, BlogID: uuid.New().String(), UserID: ownerID}

	comments.On("GetByID", mock.Anything, commentID).Return(comment, nil)

	// First toggle: nothing to remove, insert succeeds.
	comments.On("RemoveLike", mock.Anything, commentID, likerID).Return(false, nil).Once()
	comments.On("AddLike", mock.Anything, commentID, likerID).Return(nil).Once()
	comments.On("CountLikes", mock.Anything, commentID).Return(int64(1), nil).Once()
	users.On("FindByID", mock.Anything, likerID).Return(&models.User{ID: likerID, Name: "Mani"}, nil)
	notifier.On("CommentLiked", comment, likerID, "Mani").Return().Once()

	result, err := svc.ToggleLike(context.Background(), commentID, likerID)
	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)

	// Second toggle: the membership row exists, so it is removed.
	comments.On("RemoveLike", mock.Anything, commentID, likerID).Return(true, nil).Once()
	comments.On("CountLikes", mock.Anything, commentID).Return(int64(0), nil).Once()

	result, err = svc.ToggleLike(context.Background(), commentID, likerID)
	assert.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)

	notifier.AssertNumberOfCalls(t, "CommentLiked", 1)
	comments.AssertExpectations(t)
}

func TestToggleLike_DuplicateInsertStillLiked(t *testing.T) {
	comments, _, _, notifier, svc := newCommentService()

	commentID := uuid.New().String()
	likerID := uuid.New().String()
	comment := &models.Comment{ID: commentID, UserID: uuid.New().String()}

	comments.On("GetByID", mock.Anything, commentID).Return(comment, nil)
	comments.On("RemoveLike", mock.Anything, commentID, likerID).Return(false, nil)
	comments.On("AddLike", mock.Anything, commentID, likerID).Return(gorm.ErrDuplicatedKey)
	comments.On("CountLikes", mock.Anything, commentID).Return(int64(1), nil)

	result, err := svc.ToggleLike(context.Background(), commentID, likerID)

	assert.NoError(t, err)
	assert.True(t, result.Liked)
	// Losing the insert race must not double-notify the owner.
	notifier.AssertNotCalled(t, "CommentLiked", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_CommentMissing(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	commentID := uuid.New().String()
	comments.On("GetByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ToggleLike(context.Background(), commentID, uuid.New().String())

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteComment_CascadesToDescendants(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	blogID := uuid.New().String()
	rootID := uuid.New().String()
	childID := uuid.New().String()
	grandchildID := uuid.New().String()
	ownerID := uuid.New().String()

	comments.On("GetByID", mock.Anything, rootID).
		Return(&models.Comment{ID: rootID, BlogID: blogID, UserID: ownerID}, nil)
	comments.On("ChildIDs", mock.Anything, []string{rootID}).Return([]string{childID}, nil)
	comments.On("ChildIDs", mock.Anything, []string{childID}).Return([]string{grandchildID}, nil)
	comments.On("ChildIDs", mock.Anything, []string{grandchildID}).Return([]string{}, nil)
	comments.On("SoftDelete", mock.Anything, blogID, []string{rootID, childID, grandchildID}).Return(nil)

	err := svc.Delete(context.Background(), rootID, ownerID, false)

	assert.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestDeleteComment_NonOwnerForbidden(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	commentID := uuid.New().String()
	comments.On("GetByID", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, UserID: uuid.New().String()}, nil)

	err := svc.Delete(context.Background(), commentID, uuid.New().String(), false)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	comments.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteComment_AdminOverridesOwnership(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	blogID := uuid.New().String()
	commentID := uuid.New().String()

	comments.On("GetByID", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, BlogID: blogID, UserID: uuid.New().String()}, nil)
	comments.On("ChildIDs", mock.Anything, []string{commentID}).Return([]string{}, nil)
	comments.On("SoftDelete", mock.Anything, blogID, []string{commentID}).Return(nil)

	err := svc.Delete(context.Background(), commentID, uuid.New().String(), true)

	assert.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestHardDelete_RemovesSubtree(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	blogID := uuid.New().String()
	rootID := uuid.New().String()
	childID := uuid.New().String()

	comments.On("GetByID", mock.Anything, rootID).
		Return(&models.Comment{ID: rootID, BlogID: blogID, UserID: uuid.New().String()}, nil)
	comments.On("ChildIDs", mock.Anything, []string{rootID}).Return([]string{childID}, nil)
	comments.On("ChildIDs", mock.Anything, []string{childID}).Return([]string{}, nil)
	comments.On("HardDelete", mock.Anything, blogID, []string{rootID, childID}).Return(nil)

	err := svc.HardDelete(context.Background(), rootID)

	assert.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestListByBlog_NestsRepliesWithLikes(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	blogID := uuid.New().String()
	viewerID := uuid.New().String()
	rootID := uuid.New().String()
	replyID := uuid.New().String()

	roots := []models.Comment{{
		ID: rootID, BlogID: blogID, UserID: uuid.New().String(), Content: "root",
		User: &models.User{ID: uuid.New().String(), Name: "Priya"},
	}}
	rootRef := rootID
	replies := []models.Comment{{
		ID: replyID, BlogID: blogID, UserID: uuid.New().String(), Content: "reply",
		ParentID: &rootRef,
		User:     &models.User{ID: uuid.New().String(), Name: "Selvan"},
	}}

	comments.On("ListTopLevel", mock.Anything, blogID, 1, 10).Return(roots, int64(1), nil)
	comments.On("ListChildren", mock.Anything, []string{rootID}, false).Return(replies, nil)
	comments.On("LikeCounts", mock.Anything, []string{rootID, replyID}).
		Return(map[string]int64{rootID: 3, replyID: 1}, nil)
	comments.On("LikedByUser", mock.Anything, []string{rootID, replyID}, viewerID).
		Return(map[string]bool{replyID: true}, nil)

	resp, err := svc.ListByBlog(context.Background(), blogID, viewerID, 1, 10)

	assert.NoError(t, err)
	assert.Len(t, resp.Comments, 1)
	root := resp.Comments[0]
	assert.Equal(t, int64(3), root.LikeCount)
	assert.False(t, root.IsLiked)
	assert.Len(t, root.Replies, 1)
	assert.Equal(t, int64(1), root.Replies[0].LikeCount)
	assert.True(t, root.Replies[0].IsLiked)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListAdmin_IncludesDeleted(t *testing.T) {
	comments, _, _, _, svc := newCommentService()

	rootID := uuid.New().String()
	roots := []models.Comment{{
		ID:        rootID,
		Content:   models.DeletedContent,
		IsDeleted: true,
		UserID:    uuid.New().String(),
		User:      &models.User{Name: "Ravi"},
		Blog:      &models.Blog{Title: "On stillness", Slug: "on-stillness"},
	}}

	comments.On("ListAdmin", mock.Anything, repository.AdminCommentFilters{}, 1, 1000).
		Return(roots, int64(1), nil)
	comments.On("ListChildren", mock.Anything, []string{rootID}, true).Return([]models.Comment{}, nil)
	comments.On("LikeCounts", mock.Anything, []string{rootID}).Return(map[string]int64{}, nil)

	resp, err := svc.ListAdmin(context.Background(), repository.AdminCommentFilters{}, 1)

	assert.NoError(t, err)
	assert.Len(t, resp.Comments, 1)
	assert.True(t, resp.Comments[0].IsDeleted)
	assert.Equal(t, models.DeletedContent, resp.Comments[0].Content)
	assert.Equal(t, "On stillness", resp.Comments[0].BlogTitle)
}
