package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/ayomikun-ade/framez/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is an in-memory implementation of repositories.UserRepository
type MockUserRepository struct {
	ByID   map[uint]*models.User
	ByUID  map[string]*models.User
	nextID uint
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:  make(map[uint]*models.User),
		ByUID: make(map[string]*models.User),
	}
}

// CreateUser assigns an id and stores the user, enforcing the unique
// username index
func (m *MockUserRepository) CreateUser(user *models.User) error {
	if m.usernameTaken(user.Username, 0) {
		return models.ErrUsernameTaken
	}
	m.nextID++
	user.ID = m.nextID
	m.ByID[user.ID] = user
	m.ByUID[user.FirebaseUID] = user
	return nil
}

// GetUserByID retrieves a copy of the user by internal id
func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	if user, ok := m.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, models.ErrUserNotFound
}

// GetUserByFirebaseUID retrieves a copy of the user by external subject id
func (m *MockUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	if user, ok := m.ByUID[firebaseUID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, models.ErrUserNotFound
}

// GetUserByUsername retrieves a copy of the user by username
func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range m.ByID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

// UpdateUser updates a stored user, enforcing the unique username index
func (m *MockUserRepository) UpdateUser(user *models.User) error {
	if _, ok := m.ByID[user.ID]; !ok {
		return models.ErrUserNotFound
	}
	if m.usernameTaken(user.Username, user.ID) {
		return models.ErrUsernameTaken
	}
	m.ByID[user.ID] = user
	m.ByUID[user.FirebaseUID] = user
	return nil
}

// usernameTaken reports whether another user already holds the username
func (m *MockUserRepository) usernameTaken(username string, selfID uint) bool {
	for _, existing := range m.ByID {
		if existing.Username == username && existing.ID != selfID {
			return true
		}
	}
	return false
}

// MockPostRepository is an in-memory implementation of repositories.PostRepository
type MockPostRepository struct {
	Posts map[string]*models.Post
}

// NewMockPostRepository creates a new MockPostRepository
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{Posts: make(map[string]*models.Post)}
}

// CreatePost assigns an id and timestamps and stores the post
func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	m.Posts[post.ID.Hex()] = post
	return nil
}

// GetPostByID retrieves a copy of the stored post
func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := m.Posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	copied := *post
	copied.Likes = append([]uint{}, post.Likes...)
	copied.Comments = append([]models.Comment{}, post.Comments...)
	return &copied, nil
}

// GetPostsByAuthor retrieves one author's posts, newest first
func (m *MockPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	posts := []models.Post{}
	for _, post := range m.Posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetAllPosts retrieves every post, newest first
func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	for _, post := range m.Posts {
		posts = append(posts, *post)
	}
	sortNewestFirst(posts)
	return posts, nil
}

// UpdateLikes replaces the post's liker set
func (m *MockPostRepository) UpdateLikes(ctx context.Context, id string, likes []uint) error {
	post, ok := m.Posts[id]
	if !ok {
		return models.ErrPostNotFound
	}
	post.Likes = likes
	post.UpdatedAt = time.Now()
	return nil
}

// AppendComments replaces the post's comment list
func (m *MockPostRepository) AppendComments(ctx context.Context, id string, comments []models.Comment) error {
	post, ok := m.Posts[id]
	if !ok {
		return models.ErrPostNotFound
	}
	post.Comments = comments
	post.UpdatedAt = time.Now()
	return nil
}

// DeletePost removes the post
func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	if _, ok := m.Posts[id]; !ok {
		return models.ErrPostNotFound
	}
	delete(m.Posts, id)
	return nil
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
