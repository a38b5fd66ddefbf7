package models

// Story is a success story submitted by an alumnus
type Story struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary"`
	Content     string         `json:"content"`
	AuthorID    string         `json:"authorId"`
	AuthorName  string         `json:"authorName"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags,omitempty"`
	Likes       int            `json:"likes"`
	Views       int            `json:"views"`
	LikedBy     []string       `json:"likedBy,omitempty"`
	Approval    ApprovalStatus `json:"approval"`
	IsApproved  bool           `json:"isApproved"`
	IsPublished bool           `json:"isPublished"`
	Featured    bool           `json:"featured"`
	Timestamps
}

func (s Story) EntityID() string { return s.ID }

// Visible reports whether the story may be shown to non-admins
func (s Story) Visible() bool {
	return s.IsApproved && s.IsPublished
}

// LikedByUser reports whether userID currently likes the story
func (s Story) LikedByUser(userID string) bool {
	return containsString(s.LikedBy, userID)
}

// ToggleLike flips userID's like. Likes only drop when that user had liked it.
func (s *Story) ToggleLike(userID string) (liked bool) {
	for i, id := range s.LikedBy {
		if id == userID {
			s.LikedBy = append(s.LikedBy[:i:i], s.LikedBy[i+1:]...)
			if s.Likes > 0 {
				s.Likes--
			}
			return false
		}
	}
	s.LikedBy = append(s.LikedBy, userID)
	s.Likes++
	return true
}
