package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const journalsCollection = "journals"

// journalDocument is the MongoDB shape of a journal.
type journalDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Mood      string             `bson:"mood"`
	Analysis  *string            `bson:"analysis"`
	IsPrivate bool               `bson:"is_private"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *journalDocument) toModel() models.Journal {
	return models.Journal{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		Mood:      models.Mood(d.Mood),
		Analysis:  d.Analysis,
		IsPrivate: d.IsPrivate,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoJournalRepository stores journals in the "journals" collection.
type MongoJournalRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoJournalRepository(db *mongo.Database) *MongoJournalRepository {
	return &MongoJournalRepository{col: db.Collection(journalsCollection), now: storeNow}
}

// EnsureIndexes creates the (user_id, created_at desc) index backing list queries.
// Called on startup from main after Mongo has connected.
func (r *MongoJournalRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_user_created"),
	})
	return err
}

func (r *MongoJournalRepository) Create(ctx context.Context, j *models.Journal) error {
	now := r.now()
	doc := journalDocument{
		ID:        primitive.NewObjectID(),
		UserID:    j.UserID,
		Title:     j.Title,
		Content:   j.Content,
		Mood:      string(j.Mood),
		Analysis:  j.Analysis,
		IsPrivate: j.IsPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	j.ID = doc.ID.Hex()
	j.CreatedAt = now
	j.UpdatedAt = now
	return nil
}

func (r *MongoJournalRepository) ListByUser(ctx context.Context, userID string, since time.Time) ([]models.Journal, error) {
	filter := bson.M{"user_id": userID}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since.UTC()}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []journalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode journals: %w", err)
	}

	journals := make([]models.Journal, 0, len(docs))
	for i := range docs {
		journals = append(journals, docs[i].toModel())
	}
	return journals, nil
}

func (r *MongoJournalRepository) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc journalDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}

	j := doc.toModel()
	return &j, nil
}

// Save writes the mutable fields of j. user_id and created_at are never rewritten.
func (r *MongoJournalRepository) Save(ctx context.Context, j *models.Journal) error {
	oid, err := primitive.ObjectIDFromHex(j.ID)
	if err != nil {
		return ErrNotFound
	}

	now := r.now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      j.Title,
		"content":    j.Content,
		"mood":       string(j.Mood),
		"analysis":   j.Analysis,
		"is_private": j.IsPrivate,
		"updated_at": now,
	}})
	if err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	j.UpdatedAt = now
	return nil
}

func (r *MongoJournalRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// storeNow is the store clock, truncated to the millisecond precision MongoDB keeps.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
