package models

import "time"

// ForumCategory groups topics. TopicCount, PostCount and LastPostAt are denormalized
// counters maintained by whoever creates topics and posts under the category.
type ForumCategory struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Slug        string     `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	SortOrder   int        `gorm:"not null;default:0" json:"sort_order"`
	TopicCount  int        `gorm:"not null;default:0" json:"topic_count"`
	PostCount   int        `gorm:"not null;default:0" json:"post_count"`
	LastPostAt  *time.Time `json:"last_post_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ForumCategory) TableName() string {
	return "forum_categories"
}

// ForumTopic is a discussion thread inside a category.
type ForumTopic struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CategoryID uint       `gorm:"not null;index" json:"category_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Slug       string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Content    string     `gorm:"type:text" json:"content"`
	IsPinned   bool       `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked   bool       `gorm:"not null;default:false" json:"is_locked"`
	ViewCount  int        `gorm:"not null;default:0" json:"view_count"`
	LastPostAt *time.Time `json:"last_post_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ForumTopic) TableName() string {
	return "forum_topics"
}

// ForumPost is a message in a topic.
type ForumPost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TopicID   uint       `gorm:"not null;index" json:"topic_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	IsEdited  bool       `gorm:"not null;default:false" json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumReply answers a post.
type ForumReply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ForumReply) TableName() string {
	return "forum_replies"
}

// ForumPostUpvote is a single voter's upvote on a post.
type ForumPostUpvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_forum_post_upvotes_pair" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_forum_post_upvotes_pair" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ForumPostUpvote) TableName() string {
	return "forum_post_upvotes"
}

// ForumUserStats is derived from a user's topics, posts, replies and received upvotes.
type ForumUserStats struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	TopicCount      int        `gorm:"not null;default:0" json:"topic_count"`
	PostCount       int        `gorm:"not null;default:0" json:"post_count"`
	ReplyCount      int        `gorm:"not null;default:0" json:"reply_count"`
	UpvotesReceived int        `gorm:"not null;default:0" json:"upvotes_received"`
	Reputation      int        `gorm:"not null;default:0" json:"reputation"`
	LastPostAt      *time.Time `json:"last_post_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ForumUserStats) TableName() string {
	return "forum_user_stats"
}

// Reputation derives a forum reputation score from activity counts.
func Reputation(topics, posts, replies, upvotesReceived int) int {
	return 5*topics + 2*posts + replies + 3*upvotesReceived
}
