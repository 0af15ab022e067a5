package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"cinedex/internal/models"
	"cinedex/internal/observability"
	"cinedex/internal/repository"
	"cinedex/internal/validation"

	"gorm.io/gorm"
)

// ForumStats summarizes a forum pass.
type ForumStats struct {
	Topics  int
	Posts   int
	Replies int
	Upvotes int
	Users   int
}

// GenerateForumDataMinimal seeds categories (once), then topics, posts, replies and upvotes under
// every category, and finally recomputes per-user forum stats. A failing topic or post is logged
// and skipped.
func (s *Seeder) GenerateForumDataMinimal(ctx context.Context) error {
	if err := s.EnsureCategories(ctx); err != nil {
		return err
	}

	users, err := s.store.IDs(ctx, &models.User{}, repository.Query{})
	if err != nil {
		return err
	}
	if len(users) < 2 {
		return models.NewValidationError("at least two users are required to generate forum data")
	}

	var categories []models.ForumCategory
	if err := s.store.Find(ctx, &categories, repository.Query{Order: "sort_order ASC, id ASC"}); err != nil {
		return err
	}

	var total ForumStats
	for i := range categories {
		stats, err := s.seedCategory(ctx, &categories[i], users)
		if err != nil {
			return fmt.Errorf("category %q: %w", categories[i].Name, err)
		}
		total.Topics += stats.Topics
		total.Posts += stats.Posts
		total.Replies += stats.Replies
		total.Upvotes += stats.Upvotes
	}

	n, err := s.RecomputeForumUserStats(ctx)
	if err != nil {
		return err
	}
	total.Users = n

	observability.Logger.InfoContext(ctx, "forum generated",
		slog.Int("topics", total.Topics),
		slog.Int("posts", total.Posts),
		slog.Int("replies", total.Replies),
		slog.Int("upvotes", total.Upvotes),
		slog.Int("user_stats", total.Users),
	)
	return nil
}

// EnsureCategories inserts the fixture categories when the category table is empty.
func (s *Seeder) EnsureCategories(ctx context.Context) error {
	n, err := s.store.Count(ctx, &models.ForumCategory{})
	if err != nil {
		return err
	}
	if n > 0 {
		observability.Logger.InfoContext(ctx, "forum categories already present", slog.Int64("count", n))
		return nil
	}
	for i, c := range s.fixtures.ForumCategories {
		cat := &models.ForumCategory{
			Name:        c.Name,
			Slug:        Slugify(c.Name),
			Description: c.Description,
			SortOrder:   i + 1,
		}
		if err := s.store.Create(ctx, cat); err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
	}
	observability.Logger.InfoContext(ctx, "✓ forum categories seeded", slog.Int("count", len(s.fixtures.ForumCategories)))
	return nil
}

func (s *Seeder) seedCategory(ctx context.Context, cat *models.ForumCategory, users []uint) (ForumStats, error) {
	var stats ForumStats
	v := s.values

	// Topic ordinals continue from what the category already holds so slugs stay unique across runs.
	existing, err := s.store.CountWhere(ctx, &models.ForumTopic{}, repository.Query{
		Where: "category_id = ?",
		Args:  []interface{}{cat.ID},
	})
	if err != nil {
		return stats, err
	}

	var lastPost *time.Time
	nTopics := v.Between(1, 2)
	for i := 0; i < nTopics; i++ {
		title := fmt.Sprintf("%s - Topic %d", cat.Name, int(existing)+i+1)
		slug := Slugify(title)
		if err := validation.ValidateSlug(slug); err != nil {
			observability.Logger.WarnContext(ctx, "skipping forum topic", slog.String("title", title), slog.String("error", err.Error()))
			continue
		}
		topic := &models.ForumTopic{
			CategoryID: cat.ID,
			UserID:     v.PickOne(users),
			Title:      title,
			Slug:       slug,
			Content:    v.Paragraph(),
			IsPinned:   i == 0,
			IsLocked:   i == 1,
			ViewCount:  v.Between(0, 500),
		}
		if err := s.store.Create(ctx, topic); err != nil {
			observability.Logger.WarnContext(ctx, "skipping forum topic",
				slog.String("title", title),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.Topics++

		posts, last := s.seedPosts(ctx, topic, users)
		stats.Posts += posts.Posts
		stats.Replies += posts.Replies
		stats.Upvotes += posts.Upvotes
		if last != nil && (lastPost == nil || last.After(*lastPost)) {
			lastPost = last
		}
	}

	if stats.Topics == 0 {
		return stats, nil
	}
	updates := map[string]interface{}{
		"topic_count": gorm.Expr("topic_count + ?", stats.Topics),
		"post_count":  gorm.Expr("post_count + ?", stats.Posts),
	}
	if lastPost != nil {
		updates["last_post_at"] = *lastPost
	}
	_, err = s.store.Update(ctx, &models.ForumCategory{}, repository.Query{
		Where: "id = ?",
		Args:  []interface{}{cat.ID},
	}, updates)
	return stats, err
}

// seedPosts writes 1-3 posts under topic and returns what was created plus the newest post time.
func (s *Seeder) seedPosts(ctx context.Context, topic *models.ForumTopic, users []uint) (ForumStats, *time.Time) {
	var stats ForumStats
	var last *time.Time
	v := s.values

	nPosts := v.Between(1, 3)
	for j := 0; j < nPosts; j++ {
		post := &models.ForumPost{
			TopicID: topic.ID,
			UserID:  v.PickOne(users),
			Content: v.Paragraph(),
		}
		if j == 1 {
			edited := s.now().UTC()
			post.IsEdited = true
			post.EditedAt = &edited
		}
		// A post and its topic's last_post_at land together or not at all.
		err := s.store.Transaction(ctx, func(tx *repository.Store) error {
			if err := tx.Create(ctx, post); err != nil {
				return err
			}
			_, err := tx.Update(ctx, &models.ForumTopic{}, repository.Query{
				Where: "id = ?",
				Args:  []interface{}{topic.ID},
			}, map[string]interface{}{"last_post_at": post.CreatedAt})
			return err
		})
		if err != nil {
			observability.Logger.WarnContext(ctx, "skipping forum post",
				slog.Uint64("topic_id", uint64(topic.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.Posts++
		created := post.CreatedAt
		last = &created

		if j != 0 {
			continue
		}

		voter := v.PickOne(without(users, post.UserID))
		out := s.store.Insert(ctx, &models.ForumPostUpvote{PostID: post.ID, UserID: voter})
		if out.Kind == repository.Created {
			stats.Upvotes++
		} else if out.Kind == repository.Failed {
			observability.Logger.WarnContext(ctx, "skipping forum upvote", slog.String("error", out.Err.Error()))
		}

		reply := &models.ForumReply{PostID: post.ID, UserID: v.PickOne(users), Content: v.f.Sentence(v.Between(6, 16))}
		if err := s.store.Create(ctx, reply); err != nil {
			observability.Logger.WarnContext(ctx, "skipping forum reply", slog.String("error", err.Error()))
			continue
		}
		stats.Replies++
	}
	return stats, last
}

// RecomputeForumUserStats rebuilds the stats row of every user with a topic, post or reply,
// from the rows currently stored. It returns the number of users updated.
func (s *Seeder) RecomputeForumUserStats(ctx context.Context) (int, error) {
	active := make(map[uint]struct{})
	for _, src := range []interface{}{&models.ForumTopic{}, &models.ForumPost{}, &models.ForumReply{}} {
		ids, err := s.store.Distinct(ctx, src, "user_id")
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			active[id] = struct{}{}
		}
	}

	userIDs := make([]uint, 0, len(active))
	for id := range active {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	for _, userID := range userIDs {
		stats, err := s.computeUserStats(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("stats for user %d: %w", userID, err)
		}
		err = s.store.Upsert(ctx, stats, []string{"user_id"}, []string{
			"topic_count", "post_count", "reply_count", "upvotes_received", "reputation", "last_post_at", "updated_at",
		})
		if err != nil {
			return 0, fmt.Errorf("stats for user %d: %w", userID, err)
		}
	}
	return len(userIDs), nil
}

func (s *Seeder) computeUserStats(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	byUser := repository.Query{Where: "user_id = ?", Args: []interface{}{userID}}

	topics, err := s.store.CountWhere(ctx, &models.ForumTopic{}, byUser)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.CountWhere(ctx, &models.ForumPost{}, byUser)
	if err != nil {
		return nil, err
	}
	replies, err := s.store.CountWhere(ctx, &models.ForumReply{}, byUser)
	if err != nil {
		return nil, err
	}
	upvotes, err := s.store.CountWhere(ctx, &models.ForumPostUpvote{}, repository.Query{
		Where: "post_id IN (SELECT id FROM forum_posts WHERE user_id = ?)",
		Args:  []interface{}{userID},
	})
	if err != nil {
		return nil, err
	}

	stats := &models.ForumUserStats{
		UserID:          userID,
		TopicCount:      int(topics),
		PostCount:       int(posts),
		ReplyCount:      int(replies),
		UpvotesReceived: int(upvotes),
		Reputation:      models.Reputation(int(topics), int(posts), int(replies), int(upvotes)),
	}

	var latest models.ForumPost
	found, err := s.store.First(ctx, &latest, repository.Query{
		Where:  byUser.Where,
		Args:   byUser.Args,
		Order:  "created_at DESC",
		Select: []string{"id", "created_at"},
	})
	if err != nil {
		return nil, err
	}
	if found {
		at := latest.CreatedAt
		stats.LastPostAt = &at
	}
	return stats, nil
}
