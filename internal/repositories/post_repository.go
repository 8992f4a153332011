package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayomikun-ade/framez/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdateLikes(ctx context.Context, id string, likes []uint) error
	AppendComments(ctx context.Context, id string, comments []models.Comment) error
	DeletePost(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the secondary indexes the feed and author queries
// rely on. Safe to call on every startup.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

// CreatePost creates a new post with an empty liker set and comment list
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
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
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthor retrieves all posts by one author, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"author_id": authorID})
}

// GetAllPosts retrieves every post, newest first. Full-collection scan;
// there is no pagination at this scale.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{})
}

func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateLikes replaces the post's liker set. The write is a whole-array
// $set: concurrent toggles race last-write-wins, which is the accepted
// consistency level for this collection.
func (r *MongoPostRepository) UpdateLikes(ctx context.Context, id string, likes []uint) error {
	return r.patch(ctx, id, bson.M{"likes": likes})
}

// AppendComments replaces the post's comment list with the caller's
// already-appended copy. Same last-write-wins caveat as UpdateLikes.
func (r *MongoPostRepository) AppendComments(ctx context.Context, id string, comments []models.Comment) error {
	return r.patch(ctx, id, bson.M{"comments": comments})
}

func (r *MongoPostRepository) patch(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrPostNotFound
	}

	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating post %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID. Its embedded comments and likes go
// with the document.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrPostNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrPostNotFound
	}
	return nil
}
