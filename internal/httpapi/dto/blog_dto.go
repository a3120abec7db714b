package dto

import (
	"strings"
	"time"

	"karkandu/internal/httpapi/models"
)

// CreateBlogDTO is the admin authoring payload.
type CreateBlogDTO struct {
	Title         string   `json:"title" binding:"required,max=120"`
	Content       string   `json:"content" binding:"required,min=20"`
	Category      string   `json:"category" binding:"required"`
	Subcategory   string   `json:"subcategory"`
	Excerpt       string   `json:"excerpt" binding:"max=300"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
	Slug          string   `json:"slug"`
}

// UpdateBlogDTO carries partial blog edits.
type UpdateBlogDTO struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Category      *string  `json:"category"`
	Subcategory   *string  `json:"subcategory"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featuredImage"`
	Tags          []string `json:"tags"`
}

// TogglePublishDTO flips publication state.
type TogglePublishDTO struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

// BlogResponse is the public view of a blog post.
type BlogResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TitleTamil    string     `json:"title_tamil,omitempty"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content,omitempty"`
	ContentTamil  string     `json:"content_tamil,omitempty"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory,omitempty"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Tags          []string   `json:"tags"`
	AuthorName    string     `json:"author_name"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ViewsCount    int64      `json:"views_count"`
	ClicksCount   int64      `json:"clicks_count"`
	ReadsCount    int64      `json:"reads_count"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	AvgReadTime   int64      `json:"avg_read_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FromBlog converts a model. withContent controls whether the full body is
// included (list views send the excerpt only).
func FromBlog(blog *models.Blog, withContent bool) BlogResponse {
	authorName := ""
	if blog.Author != nil {
		authorName = blog.Author.Name
	}

	resp := BlogResponse{
		ID:            blog.ID,
		Title:         blog.Title,
		TitleTamil:    blog.TitleTamil,
		Slug:          blog.Slug,
		Category:      blog.Category,
		Subcategory:   blog.Subcategory,
		Excerpt:       blog.Excerpt,
		FeaturedImage: blog.FeaturedImage,
		Tags:          SplitTags(blog.Tags),
		AuthorName:    authorName,
		IsPublished:   blog.IsPublished,
		PublishedAt:   blog.PublishedAt,
		ViewsCount:    blog.ViewsCount,
		ClicksCount:   blog.ClicksCount,
		ReadsCount:    blog.ReadsCount,
		LikesCount:    blog.LikesCount,
		CommentsCount: blog.CommentsCount,
		AvgReadTime:   blog.AvgReadTime(),
		CreatedAt:     blog.CreatedAt,
	}
	if withContent {
		resp.Content = blog.Content
		resp.ContentTamil = blog.ContentTamil
	}
	return resp
}

// BlogListResponse pages public or admin blog listings.
type BlogListResponse struct {
	Blogs      []BlogResponse `json:"blogs"`
	Pagination Pagination     `json:"pagination"`
}

// JoinTags normalizes tags for storage: lowercase, trimmed, comma-joined.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitTags is the inverse of JoinTags.
func SplitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	return strings.Split(tags, ",")
}
