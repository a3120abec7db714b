// Package notify implements the notification outbox: producers enqueue
// intents synchronously with the triggering write, a fixed worker pool drains
// the queue and creates notification rows with bounded retry. Failures are
// logged, never propagated to the request that triggered them.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

const (
	maxAttempts  = 3
	initialDelay = 1 * time.Second
)

// intent produces the notification rows for one triggering event.
type intent func(ctx context.Context) ([]models.Notification, error)

type Outbox struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	logger        *slog.Logger

	queue    chan intent
	workers  int
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
	closeMux sync.Mutex
}

func NewOutbox(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	workers, queueSize int,
	logger *slog.Logger,
) *Outbox {
	ctx, cancel := context.WithCancel(context.Background())
	return &Outbox{
		notifications: notifications,
		users:         users,
		logger:        logger,
		queue:         make(chan intent, queueSize),
		workers:       workers,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start launches the worker goroutines.
func (o *Outbox) Start() {
	for i := 0; i < o.workers; i++ {
		o.wg.Add(1)
		go o.worker(i)
	}
	o.logger.Info("notification outbox started", "workers", o.workers)
}

// Shutdown stops accepting intents and waits for in-flight work.
func (o *Outbox) Shutdown() {
	o.closeMux.Lock()
	if !o.closed {
		close(o.queue)
		o.closed = true
	}
	o.closeMux.Unlock()

	o.wg.Wait()
	o.cancel()
	o.logger.Info("notification outbox drained")
}

// enqueue hands an intent to the pool. A full queue drops the intent rather
// than blocking the request path.
func (o *Outbox) enqueue(it intent) {
	select {
	case o.queue <- it:
	default:
		o.logger.Warn("notification outbox queue full, intent dropped")
	}
}

func (o *Outbox) worker(id int) {
	defer o.wg.Done()

	for {
		select {
		case it, ok := <-o.queue:
			if !ok {
				return
			}
			o.deliver(it)
		case <-o.ctx.Done():
			return
		}
	}
}

func (o *Outbox) deliver(it intent) {
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := o.tryDeliver(it)
		if err == nil {
			return
		}
		o.logger.Warn("notification delivery failed",
			"attempt", attempt, "error", err)
		if attempt < maxAttempts {
			select {
			case <-time.After(delay):
			case <-o.ctx.Done():
				return
			}
			delay *= 2
		}
	}
}

func (o *Outbox) tryDeliver(it intent) error {
	ctx, cancel := context.WithTimeout(o.ctx, 30*time.Second)
	defer cancel()

	rows, err := it(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return o.notifications.CreateBatch(ctx, rows)
}

// BlogPublished fans out one new_blog notification per active user. Titles
// and messages are in Tamil, matching the reader-facing language of the site.
func (o *Outbox) BlogPublished(blog *models.Blog, authorName string) {
	blogID := blog.ID
	title := blog.Title
	o.enqueue(func(ctx context.Context) ([]models.Notification, error) {
		userIDs, err := o.users.ListIDs(ctx)
		if err != nil {
			return nil, err
		}

		rows := make([]models.Notification, 0, len(userIDs))
		for _, userID := range userIDs {
			rows = append(rows, models.Notification{
				UserID:        userID,
				Type:          models.NotificationNewBlog,
				Title:         "புதிய புனித எழுத்து வெளியிடப்பட்டது",
				Message:       fmt.Sprintf("%s ஞானத்தைப் பகிர்ந்துள்ளார்: %q", authorName, title),
				RelatedBlogID: &blogID,
			})
		}
		o.logger.Info("publish fan-out queued", "blog_id", blogID, "recipients", len(rows))
		return rows, nil
	})
}

// CommentReplied notifies the parent comment's owner. Self-replies are
// silent.
func (o *Outbox) CommentReplied(parent *models.Comment, reply *models.Comment, replierName string) {
	if parent.UserID == reply.UserID {
		return
	}

	ownerID := parent.UserID
	blogID := parent.BlogID
	parentID := parent.ID
	fromID := reply.UserID
	preview := Preview(reply.Content)

	o.enqueue(func(ctx context.Context) ([]models.Notification, error) {
		return []models.Notification{{
			UserID:           ownerID,
			Type:             models.NotificationCommentReply,
			Title:            "New reply to your comment",
			Message:          fmt.Sprintf("%s replied: %q", replierName, preview),
			RelatedBlogID:    &blogID,
			RelatedCommentID: &parentID,
			FromUserID:       &fromID,
		}}, nil
	})
}

// CommentLiked notifies the comment's owner. Self-likes are silent.
func (o *Outbox) CommentLiked(comment *models.Comment, likerID, likerName string) {
	if comment.UserID == likerID {
		return
	}

	ownerID := comment.UserID
	blogID := comment.BlogID
	commentID := comment.ID
	fromID := likerID

	o.enqueue(func(ctx context.Context) ([]models.Notification, error) {
		return []models.Notification{{
			UserID:           ownerID,
			Type:             models.NotificationCommentLike,
			Title:            "Your comment got a like",
			Message:          fmt.Sprintf("%s liked your comment", likerName),
			RelatedBlogID:    &blogID,
			RelatedCommentID: &commentID,
			FromUserID:       &fromID,
		}}, nil
	})
}

// Preview truncates content to 50 runes for notification messages.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= 50 {
		return content
	}
	return string(runes[:50]) + "..."
}
