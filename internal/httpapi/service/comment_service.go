package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"karkandu/internal/apperr"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

const (
	minCommentLen = 2
	maxCommentLen = 1000

	// The admin panel loads the whole moderation backlog in one page.
	adminCommentPageSize = 1000
)

type CommentService interface {
	Add(ctx context.Context, userID string, input dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Reply(ctx context.Context, parentID, userID, content string) (*dto.CommentResponse, error)
	ListByBlog(ctx context.Context, blogID, viewerID string, page, pageSize int) (*dto.CommentListResponse, error)
	ToggleLike(ctx context.Context, commentID, userID string) (*dto.CommentLikeResult, error)
	Delete(ctx context.Context, commentID, userID string, isAdmin bool) error
	ListAdmin(ctx context.Context, filters repository.AdminCommentFilters, page int) (*dto.AdminCommentListResponse, error)
	HardDelete(ctx context.Context, commentID string) error
}

type commentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	users repository.UserRepository,
	notifier Notifier,
) CommentService {
	return &commentService{
		comments: comments,
		blogs:    blogs,
		users:    users,
		notifier: notifier,
	}
}

// Add posts a comment on a published blog, optionally under a parent comment
// on the same blog. A reply to someone else's comment queues a notification
// for the parent's owner.
func (s *commentService) Add(ctx context.Context, userID string, input dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := validateID(input.BlogID, "blog id"); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if n := utf8.RuneCountInString(content); n < minCommentLen || n > maxCommentLen {
		return nil, apperr.Newf(apperr.ErrInvalid, "comment must be between %d and %d characters", minCommentLen, maxCommentLen)
	}

	if _, err := s.blogs.GetPublished(ctx, input.BlogID); err != nil {
		return nil, orNotFound(err, "blog not found or not published")
	}

	var parent *models.Comment
	if input.ParentCommentID != "" {
		if err := validateID(input.ParentCommentID, "parent comment id"); err != nil {
			return nil, err
		}
		found, err := s.comments.GetOnBlog(ctx, input.ParentCommentID, input.BlogID)
		if err != nil {
			return nil, orNotFound(err, "parent comment not found on this blog")
		}
		parent = found
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, "user not found")
	}

	comment := &models.Comment{
		BlogID:  input.BlogID,
		UserID:  userID,
		Content: content,
	}
	if parent != nil {
		parentID := parent.ID
		comment.ParentID = &parentID
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = user

	if parent != nil {
		s.notifier.CommentReplied(parent, comment, user.Name)
	}

	resp := dto.FromComment(comment, 0, false)
	return &resp, nil
}

// Reply posts under an existing comment; the blog is inferred from the
// parent.
func (s *commentService) Reply(ctx context.Context, parentID, userID, content string) (*dto.CommentResponse, error) {
	if err := validateID(parentID, "comment id"); err != nil {
		return nil, err
	}

	parent, err := s.comments.GetByID(ctx, parentID)
	if err != nil {
		return nil, orNotFound(err, "comment not found")
	}

	return s.Add(ctx, userID, dto.CreateCommentDTO{
		BlogID:          parent.BlogID,
		Content:         content,
		ParentCommentID: parent.ID,
	})
}

// ListByBlog pages live top-level comments newest first, each carrying its
// live replies oldest first, with like counts and the viewer's liked flags.
func (s *commentService) ListByBlog(ctx context.Context, blogID, viewerID string, page, pageSize int) (*dto.CommentListResponse, error) {
	if err := validateID(blogID, "blog id"); err != nil {
		return nil, err
	}

	roots, total, err := s.comments.ListTopLevel(ctx, blogID, page, pageSize)
	if err != nil {
		return nil, err
	}

	rootIDs := make([]string, len(roots))
	for i, root := range roots {
		rootIDs[i] = root.ID
	}

	children, err := s.comments.ListChildren(ctx, rootIDs, false)
	if err != nil {
		return nil, err
	}

	allIDs := append([]string{}, rootIDs...)
	for _, child := range children {
		allIDs = append(allIDs, child.ID)
	}

	counts, err := s.comments.LikeCounts(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.comments.LikedByUser(ctx, allIDs, viewerID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.Comment)
	for _, child := range children {
		if child.ParentID == nil {
			continue
		}
		byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
	}

	responses := make([]dto.CommentResponse, 0, len(roots))
	for i := range roots {
		root := &roots[i]
		resp := dto.FromComment(root, counts[root.ID], liked[root.ID])
		for j := range byParent[root.ID] {
			child := &byParent[root.ID][j]
			resp.Replies = append(resp.Replies, dto.FromComment(child, counts[child.ID], liked[child.ID]))
		}
		responses = append(responses, resp)
	}

	return &dto.CommentListResponse{
		Comments:   responses,
		Pagination: dto.NewPagination(total, page, pageSize),
	}, nil
}

// ToggleLike flips the caller's like on a comment. The unique pair index in
// storage is the arbiter, so a double tap resolves to one membership row no
// matter how the requests interleave. Only a genuinely new like notifies the
// comment's owner.
func (s *commentService) ToggleLike(ctx context.Context, commentID, userID string) (*dto.CommentLikeResult, error) {
	if err := validateID(commentID, "comment id"); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, orNotFound(err, "comment not found")
	}

	removed, err := s.comments.RemoveLike(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	liked := false
	newlyLiked := false
	if !removed {
		err := s.comments.AddLike(ctx, commentID, userID)
		switch {
		case err == nil:
			newlyLiked = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Concurrent toggle won the insert; the like stands.
		default:
			return nil, err
		}
		liked = true
	}

	count, err := s.comments.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if newlyLiked {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			s.notifier.CommentLiked(comment, userID, user.Name)
		}
	}

	return &dto.CommentLikeResult{Liked: liked, LikeCount: count}, nil
}

// Delete soft-deletes a comment and every descendant under it. Only the
// author or an admin may delete; the rows stay in place with their content
// blanked so the tree keeps its shape.
func (s *commentService) Delete(ctx context.Context, commentID, userID string, isAdmin bool) error {
	if err := validateID(commentID, "comment id"); err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return orNotFound(err, "comment not found")
	}

	if comment.UserID != userID && !isAdmin {
		return apperr.New(apperr.ErrForbidden, "you can only delete your own comments")
	}

	ids, err := s.collectTree(ctx, comment.ID)
	if err != nil {
		return err
	}
	return s.comments.SoftDelete(ctx, comment.BlogID, ids)
}

// ListAdmin returns the moderation view: top-level comments including deleted
// ones, with author, blog, and the full reply chain.
func (s *commentService) ListAdmin(ctx context.Context, filters repository.AdminCommentFilters, page int) (*dto.AdminCommentListResponse, error) {
	roots, total, err := s.comments.ListAdmin(ctx, filters, page, adminCommentPageSize)
	if err != nil {
		return nil, err
	}

	rootIDs := make([]string, len(roots))
	for i, root := range roots {
		rootIDs[i] = root.ID
	}

	children, err := s.comments.ListChildren(ctx, rootIDs, true)
	if err != nil {
		return nil, err
	}

	allIDs := append([]string{}, rootIDs...)
	for _, child := range children {
		allIDs = append(allIDs, child.ID)
	}
	counts, err := s.comments.LikeCounts(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.Comment)
	for _, child := range children {
		if child.ParentID == nil {
			continue
		}
		byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
	}

	responses := make([]dto.AdminCommentResponse, 0, len(roots))
	for i := range roots {
		root := &roots[i]
		resp := adminCommentResponse(root, counts[root.ID])
		for j := range byParent[root.ID] {
			child := &byParent[root.ID][j]
			resp.Replies = append(resp.Replies, adminCommentResponse(child, counts[child.ID]))
		}
		responses = append(responses, resp)
	}

	return &dto.AdminCommentListResponse{
		Comments:   responses,
		Pagination: dto.NewPagination(total, page, adminCommentPageSize),
	}, nil
}

// HardDelete removes a comment subtree and its like rows permanently.
// Admin-only; the handler gates the role.
func (s *commentService) HardDelete(ctx context.Context, commentID string) error {
	if err := validateID(commentID, "comment id"); err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return orNotFound(err, "comment not found")
	}

	ids, err := s.collectTree(ctx, comment.ID)
	if err != nil {
		return err
	}
	return s.comments.HardDelete(ctx, comment.BlogID, ids)
}

// collectTree walks parent_id links breadth-first and returns the root plus
// every descendant id, deleted ones included.
func (s *commentService) collectTree(ctx context.Context, rootID string) ([]string, error) {
	ids := []string{rootID}
	frontier := []string{rootID}
	for len(frontier) > 0 {
		children, err := s.comments.ChildIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}

func adminCommentResponse(comment *models.Comment, likeCount int64) dto.AdminCommentResponse {
	resp := dto.AdminCommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		IsDeleted: comment.IsDeleted,
		Author:    "Deleted User",
		LikeCount: likeCount,
		Replies:   []dto.AdminCommentResponse{},
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.Author = comment.User.Name
	}
	if comment.Blog != nil {
		resp.BlogTitle = comment.Blog.Title
		resp.BlogSlug = comment.Blog.Slug
	}
	return resp
}
