package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const announcementCollectionName = "announcements"

type AnnouncementMongoRepository struct {
	db *mongo.Database
}

func NewAnnouncementMongoRepository(client *mongo.Client, dbName string) *AnnouncementMongoRepository {
	return &AnnouncementMongoRepository{
		db: client.Database(dbName),
	}
}

// announcementDocument mirrors the flat-file layout: the generated 12-char
// announcement id is the _id, field names match the serialized record.
type announcementDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	StartDate   string     `bson:"start_date"`
	EndDate     string     `bson:"end_date"`
	Color       string     `bson:"color"`
	Link        *string    `bson:"link"`
	CreatedBy   string     `bson:"created_by"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

func toAnnouncementDocument(id string, a *entity.Announcement) *announcementDocument {
	return &announcementDocument{
		ID:          id,
		Title:       a.Title,
		Description: a.Description,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		Color:       a.Color,
		Link:        a.Link,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAnnouncementEntity(doc *announcementDocument) *entity.Announcement {
	return &entity.Announcement{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
		Color:       doc.Color,
		Link:        doc.Link,
		CreatedBy:   doc.CreatedBy,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *AnnouncementMongoRepository) Put(ctx context.Context, id string, announcement *entity.Announcement) error {
	doc := toAnnouncementDocument(id, announcement)

	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(announcementCollectionName).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to put announcement %s in mongo: %w", id, err)
	}
	return nil
}

func (r *AnnouncementMongoRepository) GetByID(ctx context.Context, id string) (*entity.Announcement, error) {
	var doc announcementDocument
	err := r.db.Collection(announcementCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement by id from mongo: %w", err)
	}
	return toAnnouncementEntity(&doc), nil
}

func (r *AnnouncementMongoRepository) ListAll(ctx context.Context) ([]*entity.Announcement, error) {
	cursor, err := r.db.Collection(announcementCollectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []announcementDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode announcement list from mongo: %w", err)
	}

	announcements := make([]*entity.Announcement, len(docs))
	for i := range docs {
		announcements[i] = toAnnouncementEntity(&docs[i])
	}
	return announcements, nil
}
