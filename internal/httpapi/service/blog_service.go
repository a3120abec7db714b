package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

type BlogService interface {
	ListPublished(ctx context.Context, filters repository.BlogFilters, page, pageSize int) (*dto.BlogListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.BlogResponse, error)
	Featured(ctx context.Context, limit int) ([]dto.BlogResponse, error)

	Create(ctx context.Context, authorID string, input dto.CreateBlogDTO) (*dto.BlogResponse, error)
	Update(ctx context.Context, id string, input dto.UpdateBlogDTO) (*dto.BlogResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*dto.BlogResponse, error)
	ListAll(ctx context.Context, page, pageSize int) (*dto.BlogListResponse, error)
	TogglePublish(ctx context.Context, id string, publish bool) (*dto.BlogResponse, error)
}

type blogService struct {
	blogs       repository.BlogRepository
	users       repository.UserRepository
	subscribers repository.SubscriberRepository
	translator  Translator
	notifier    Notifier
	newsletter  Newsletter
	logger      *slog.Logger
}

func NewBlogService(
	blogs repository.BlogRepository,
	users repository.UserRepository,
	subscribers repository.SubscriberRepository,
	translator Translator,
	notifier Notifier,
	newsletter Newsletter,
	logger *slog.Logger,
) BlogService {
	return &blogService{
		blogs:       blogs,
		users:       users,
		subscribers: subscribers,
		translator:  translator,
		notifier:    notifier,
		newsletter:  newsletter,
		logger:      logger,
	}
}

func (s *blogService) ListPublished(ctx context.Context, filters repository.BlogFilters, page, pageSize int) (*dto.BlogListResponse, error) {
	blogs, total, err := s.blogs.ListPublished(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}
	return blogListResponse(blogs, total, page, pageSize), nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*dto.BlogResponse, error) {
	blog, err := s.blogs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, orNotFound(err, "blog not found")
	}
	resp := dto.FromBlog(blog, true)
	return &resp, nil
}

func (s *blogService) Featured(ctx context.Context, limit int) ([]dto.BlogResponse, error) {
	blogs, err := s.blogs.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.BlogResponse, len(blogs))
	for i := range blogs {
		responses[i] = dto.FromBlog(&blogs[i], false)
	}
	return responses, nil
}

// Create stores a draft. The Tamil rendering is requested up front, best
// effort: when translation is unavailable the Tamil columns stay empty and
// the English text stands alone.
func (s *blogService) Create(ctx context.Context, authorID string, input dto.CreateBlogDTO) (*dto.BlogResponse, error) {
	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}

	blog := &models.Blog{
		Title:         strings.TrimSpace(input.Title),
		Slug:          slug,
		Content:       input.Content,
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Excerpt:       input.Excerpt,
		FeaturedImage: input.FeaturedImage,
		Tags:          dto.JoinTags(input.Tags),
		AuthorID:      authorID,
	}

	if tamil := s.translator.ToTamil(ctx, blog.Title); tamil != blog.Title {
		blog.TitleTamil = tamil
	}
	if tamil := s.translator.ToTamil(ctx, blog.Content); tamil != blog.Content {
		blog.ContentTamil = tamil
	}

	err := s.blogs.Create(ctx, blog)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Slug collision; retry once with a timestamp suffix.
		blog.Slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
		err = s.blogs.Create(ctx, blog)
	}
	if err != nil {
		return nil, err
	}

	resp := dto.FromBlog(blog, true)
	return &resp, nil
}

func (s *blogService) Update(ctx context.Context, id string, input dto.UpdateBlogDTO) (*dto.BlogResponse, error) {
	if err := validateID(id, "blog id"); err != nil {
		return nil, err
	}
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "blog not found")
	}

	if input.Title != nil {
		blog.Title = strings.TrimSpace(*input.Title)
		if tamil := s.translator.ToTamil(ctx, blog.Title); tamil != blog.Title {
			blog.TitleTamil = tamil
		}
	}
	if input.Content != nil {
		blog.Content = *input.Content
		if tamil := s.translator.ToTamil(ctx, blog.Content); tamil != blog.Content {
			blog.ContentTamil = tamil
		}
	}
	if input.Category != nil {
		blog.Category = *input.Category
	}
	if input.Subcategory != nil {
		blog.Subcategory = *input.Subcategory
	}
	if input.Excerpt != nil {
		blog.Excerpt = *input.Excerpt
	}
	if input.FeaturedImage != nil {
		blog.FeaturedImage = *input.FeaturedImage
	}
	if input.Tags != nil {
		blog.Tags = dto.JoinTags(input.Tags)
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}
	resp := dto.FromBlog(blog, true)
	return &resp, nil
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "blog id"); err != nil {
		return err
	}
	if _, err := s.blogs.GetByID(ctx, id); err != nil {
		return orNotFound(err, "blog not found")
	}
	return s.blogs.Delete(ctx, id)
}

func (s *blogService) GetByID(ctx context.Context, id string) (*dto.BlogResponse, error) {
	if err := validateID(id, "blog id"); err != nil {
		return nil, err
	}
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "blog not found")
	}
	resp := dto.FromBlog(blog, true)
	return &resp, nil
}

func (s *blogService) ListAll(ctx context.Context, page, pageSize int) (*dto.BlogListResponse, error) {
	blogs, total, err := s.blogs.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return blogListResponse(blogs, total, page, pageSize), nil
}

// TogglePublish flips publication state. Publishing is the fan-out trigger:
// every active user gets an in-app notification through the outbox and
// subscribers get the newsletter mail. Setting the current state again is a
// no-op.
func (s *blogService) TogglePublish(ctx context.Context, id string, publish bool) (*dto.BlogResponse, error) {
	if err := validateID(id, "blog id"); err != nil {
		return nil, err
	}
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "blog not found")
	}

	if blog.IsPublished == publish {
		resp := dto.FromBlog(blog, true)
		return &resp, nil
	}

	if publish {
		now := time.Now()
		blog.IsPublished = true
		blog.PublishedAt = &now
	} else {
		blog.IsPublished = false
		blog.PublishedAt = nil
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}

	if publish {
		authorName := ""
		if author, err := s.users.FindByID(ctx, blog.AuthorID); err == nil {
			authorName = author.Name
		}
		s.notifier.BlogPublished(blog, authorName)
		go s.sendNewsletter(blog.Title, blog.Slug)
	}

	resp := dto.FromBlog(blog, true)
	return &resp, nil
}

// sendNewsletter runs off the request path; publish must not wait on SMTP.
func (s *blogService) sendNewsletter(title, slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	emails, err := s.subscribers.ListEmails(ctx)
	if err != nil {
		s.logger.Error("newsletter recipient lookup failed", "error", err)
		return
	}
	if len(emails) == 0 {
		return
	}
	if err := s.newsletter.SendNewsletter(emails, title, slug); err != nil {
		s.logger.Error("newsletter send failed", "error", err, "recipients", len(emails))
	}
}

func blogListResponse(blogs []models.Blog, total int64, page, pageSize int) *dto.BlogListResponse {
	responses := make([]dto.BlogResponse, len(blogs))
	for i := range blogs {
		responses[i] = dto.FromBlog(&blogs[i], false)
	}
	return &dto.BlogListResponse{
		Blogs:      responses,
		Pagination: dto.NewPagination(total, page, pageSize),
	}
}

// Slugify turns a title into a URL slug. Tamil titles slug to nothing under
// the ASCII filter, so an empty result falls back to a timestamped slug.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fmt.Sprintf("post-%d", time.Now().Unix())
	}
	return slug
}
