package service

import (
	"context"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/repository"
)

type StatsService interface {
	Overview(ctx context.Context) (*dto.StatsOverview, error)
	PerBlog(ctx context.Context) ([]repository.BlogStats, error)
	ForBlog(ctx context.Context, blogID string) (*repository.BlogStats, error)
}

type statsService struct {
	interactions repository.InteractionRepository
	blogs        repository.BlogRepository
	users        repository.UserRepository
}

func NewStatsService(
	interactions repository.InteractionRepository,
	blogs repository.BlogRepository,
	users repository.UserRepository,
) StatsService {
	return &statsService{interactions: interactions, blogs: blogs, users: users}
}

// Overview sums the interaction log across all blogs. The log is the
// authoritative record; the counters cached on blogs are only a fast path.
func (s *statsService) Overview(ctx context.Context) (*dto.StatsOverview, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	blogCount, err := s.blogs.Count(ctx)
	if err != nil {
		return nil, err
	}

	perBlog, err := s.interactions.AggregateByBlog(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.StatsOverview{Users: userCount, Blogs: blogCount}
	for _, stats := range perBlog {
		overview.Views += stats.Views
		overview.Clicks += stats.Clicks
		overview.Reads += stats.Reads
		overview.Likes += stats.Likes
		overview.Comments += stats.Comments
		overview.TotalReadTime += stats.TotalReadTime
	}
	return overview, nil
}

func (s *statsService) PerBlog(ctx context.Context) ([]repository.BlogStats, error) {
	return s.interactions.AggregateByBlog(ctx)
}

func (s *statsService) ForBlog(ctx context.Context, blogID string) (*repository.BlogStats, error) {
	if err := validateID(blogID, "blog id"); err != nil {
		return nil, err
	}
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, orNotFound(err, "blog not found")
	}
	return s.interactions.AggregateForBlog(ctx, blogID)
}
