package handlers

import (
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
)

// Display fallbacks for enrichment when the referenced user record is
// missing. Enrichment never fails a read.
const (
	unknownName     = "Unknown"
	unknownUsername = "unknown"
)

// userCache memoizes directory lookups within a single read so that a
// feed enrichment costs at most one lookup per distinct user.
type userCache struct {
	userRepo repositories.UserRepository
	users    map[uint]*models.User
}

func newUserCache(userRepo repositories.UserRepository) *userCache {
	return &userCache{userRepo: userRepo, users: make(map[uint]*models.User)}
}

// get returns the cached user, or nil when the record is missing. Lookup
// errors degrade to nil: the read continues with fallback display fields.
func (uc *userCache) get(id uint) *models.User {
	if user, ok := uc.users[id]; ok {
		return user
	}
	user, _ := uc.userRepo.GetUserByID(id)
	uc.users[id] = user
	return user
}

// enrichPost projects a stored post with denormalized author and
// commenter display fields.
func enrichPost(uc *userCache, post models.Post) models.EnrichedPost {
	enriched := models.EnrichedPost{
		Post:           post,
		AuthorName:     unknownName,
		AuthorUsername: unknownUsername,
		Comments:       make([]models.EnrichedComment, 0, len(post.Comments)),
	}
	if author := uc.get(post.AuthorID); author != nil {
		enriched.AuthorName = author.Name
		enriched.AuthorUsername = author.Username
		enriched.AuthorImageURL = author.ImageURL
	}
	for _, comment := range post.Comments {
		enriched.Comments = append(enriched.Comments, enrichComment(uc, comment))
	}
	return enriched
}

// enrichComment projects a stored comment with commenter display fields.
func enrichComment(uc *userCache, comment models.Comment) models.EnrichedComment {
	enriched := models.EnrichedComment{
		Comment:  comment,
		UserName: unknownName,
	}
	if user := uc.get(comment.UserID); user != nil {
		enriched.UserName = user.Name
		enriched.UserImageURL = user.ImageURL
	}
	return enriched
}
