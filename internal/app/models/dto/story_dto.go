package dto

import "time"

// CreateStoryRequest represents a story submission
type CreateStoryRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Summary  string   `json:"summary" binding:"required,max=500"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

// StoryResponse is a story as seen by one user
type StoryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	LikedByMe   bool      `json:"likedByMe"`
	Approval    string    `json:"approval"`
	IsApproved  bool      `json:"isApproved"`
	IsPublished bool      `json:"isPublished"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikeResponse reports the caller's like state after a toggle
type LikeResponse struct {
	StoryID string `json:"storyId"`
	Liked   bool   `json:"liked"`
	Likes   int    `json:"likes"`
}

// StoryStats summarizes published stories
type StoryStats struct {
	TotalStories     int            `json:"totalStories"`
	PublishedStories int            `json:"publishedStories"`
	PendingStories   int            `json:"pendingStories"`
	FeaturedStories  int            `json:"featuredStories"`
	TotalLikes       int            `json:"totalLikes"`
	TotalViews       int            `json:"totalViews"`
	AverageViews     float64        `json:"averageViews"`
	ByCategory       map[string]int `json:"byCategory"`
}
