package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single MongoDB document embedding its liker set and comment
// list. The whole document is the unit of concurrency: likes and comments
// are replaced wholesale on update, never addressed individually.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Likes     []uint             `json:"likes" bson:"likes"` // User ids, each at most once
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment lives inside its parent Post and is append-only.
type Comment struct {
	UserID    uint      `json:"user_id" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// HasLiked reports whether userID is in the post's liker set.
func (p *Post) HasLiked(userID uint) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,max=1000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// EnrichedPost is a Post projected with denormalized author display fields
// for read responses. Enrichment is best-effort: a missing author degrades
// to "Unknown"/"unknown" rather than failing the read.
type EnrichedPost struct {
	Post
	AuthorName     string            `json:"author_name"`
	AuthorUsername string            `json:"author_username"`
	AuthorImageURL string            `json:"author_image_url,omitempty"`
	Comments       []EnrichedComment `json:"comments"`
}

// EnrichedComment is a Comment projected with commenter display fields.
type EnrichedComment struct {
	Comment
	UserName     string `json:"user_name"`
	UserImageURL string `json:"user_image_url,omitempty"`
}
