package blogstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
)

// blogsCollection is the MongoDB collection holding all posts.
const blogsCollection = "blogs"

// blogDocument is the on-disk shape of a post in MongoDB. Tags are stored
// as a native array; the ObjectID becomes the post's string ID in hex form.
type blogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Excerpt     string             `bson:"excerpt,omitempty"`
	Author      string             `bson:"author"`
	Tags        []string           `bson:"tags"`
	PublishedAt time.Time          `bson:"publishedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *blogDocument) toModel() *models.BlogPost {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.BlogPost{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Content:     d.Content,
		Excerpt:     d.Excerpt,
		Author:      d.Author,
		Tags:        tags,
		PublishedAt: d.PublishedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoStore persists posts in a MongoDB collection, the document-database
// variant of the storage contract.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection with a ping,
// and returns a store over the blogs collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(blogsCollection),
	}, nil
}

// Create inserts a new document; the generated ObjectID becomes the ID.
func (s *MongoStore) Create(ctx context.Context, post NewPost) (*models.BlogPost, error) {
	now := time.Now().UTC()
	doc := blogDocument{
		ID:          primitive.NewObjectID(),
		Title:       post.Title,
		Content:     post.Content,
		Excerpt:     post.Excerpt,
		Author:      post.Author,
		Tags:        models.NormalizeTags(post.Tags),
		PublishedAt: now,
		UpdatedAt:   now,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return doc.toModel(), nil
}

// Get returns a single post by its ObjectID hex string.
func (s *MongoStore) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc blogDocument
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return doc.toModel(), nil
}

// List returns all posts sorted by publishedAt descending.
func (s *MongoStore) List(ctx context.Context) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.BlogPost{}
	for cursor.Next(ctx) {
		var doc blogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode blog: %w", err)
		}
		posts = append(posts, *doc.toModel())
	}
	return posts, cursor.Err()
}

// Update applies a $set with only the supplied fields plus updatedAt and
// returns the post as it looks after the update.
func (s *MongoStore) Update(ctx context.Context, id string, upd Update) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Excerpt != nil {
		set["excerpt"] = *upd.Excerpt
	}
	if upd.Tags != nil {
		set["tags"] = models.NormalizeTags(upd.Tags)
	}
	if upd.Author != "" {
		set["author"] = upd.Author
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc blogDocument
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return doc.toModel(), nil
}

// Delete removes a post, reporting ErrNotFound when nothing matched.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
