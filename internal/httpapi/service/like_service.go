package service

import (
	"context"

	"karkandu/internal/cache"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/repository"
)

type LikeService interface {
	Toggle(ctx context.Context, blogID, userID string) (*dto.BlogLikeResult, error)
	Status(ctx context.Context, blogID, viewerID string) (*dto.BlogLikeStatus, error)
}

type likeService struct {
	likes repository.LikeRepository
	blogs repository.BlogRepository
	cache *cache.LikeCache
}

func NewLikeService(likes repository.LikeRepository, blogs repository.BlogRepository, likeCache *cache.LikeCache) LikeService {
	return &likeService{likes: likes, blogs: blogs, cache: likeCache}
}

// Toggle flips the caller's like on a published blog. The repository resolves
// the race on the unique (blog, user) pair; two simultaneous likes end as one
// row and one counter bump.
func (s *likeService) Toggle(ctx context.Context, blogID, userID string) (*dto.BlogLikeResult, error) {
	if err := validateID(blogID, "blog id"); err != nil {
		return nil, err
	}

	if _, err := s.blogs.GetPublished(ctx, blogID); err != nil {
		return nil, orNotFound(err, "blog not found or not published")
	}

	liked, count, err := s.likes.Toggle(ctx, blogID, userID)
	if err != nil {
		return nil, err
	}

	s.cache.SetLikeCount(ctx, blogID, count)

	return &dto.BlogLikeResult{Liked: liked, LikeCount: count}, nil
}

// Status reports the like count and, for a signed-in viewer, whether they
// have liked the blog. The count comes from the cache when warm.
func (s *likeService) Status(ctx context.Context, blogID, viewerID string) (*dto.BlogLikeStatus, error) {
	if err := validateID(blogID, "blog id"); err != nil {
		return nil, err
	}

	count, ok := s.cache.GetLikeCount(ctx, blogID)
	if !ok {
		blog, err := s.blogs.GetByID(ctx, blogID)
		if err != nil {
			return nil, orNotFound(err, "blog not found")
		}
		count = blog.LikesCount
		s.cache.SetLikeCount(ctx, blogID, count)
	}

	status := &dto.BlogLikeStatus{LikeCount: count}
	if viewerID != "" {
		liked, err := s.likes.Exists(ctx, blogID, viewerID)
		if err != nil {
			return nil, err
		}
		status.IsLiked = liked
	}
	return status, nil
}
