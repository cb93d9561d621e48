package repository

import (
	"context"
	"time"

	"github.com/yukikurage/design-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type memberDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d memberDocument) toModel() models.Member {
	return models.Member{ID: d.ID.Hex(), Name: d.Name, CreatedAt: d.CreatedAt.UTC()}
}

// MongoMemberRepository is a MongoDB implementation of MemberRepository
type MongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a MemberRepository over the members collection
func NewMongoMemberRepository(db *mongo.Database) MemberRepository {
	return &MongoMemberRepository{collection: db.Collection(MembersCollection)}
}

// Count returns the number of members
func (r *MongoMemberRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// ListNames returns member names sorted ascending
func (r *MongoMemberRepository) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []memberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	return names, nil
}

// FindByName finds a member by exact name
func (r *MongoMemberRepository) FindByName(ctx context.Context, name string) (*models.Member, error) {
	var doc memberDocument
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	member := doc.toModel()
	return &member, nil
}

// Create inserts one member
func (r *MongoMemberRepository) Create(ctx context.Context, member *models.Member) error {
	doc := memberDocument{ID: primitive.NewObjectID(), Name: member.Name, CreatedAt: member.CreatedAt}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateMongoError(err)
	}
	member.ID = doc.ID.Hex()
	return nil
}

// CreateMany inserts several members with one insertMany
func (r *MongoMemberRepository) CreateMany(ctx context.Context, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}

	docs := make([]interface{}, len(members))
	ids := make([]primitive.ObjectID, len(members))
	for i, m := range members {
		ids[i] = primitive.NewObjectID()
		docs[i] = memberDocument{ID: ids[i], Name: m.Name, CreatedAt: m.CreatedAt}
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return translateMongoError(err)
	}
	for i := range members {
		members[i].ID = ids[i].Hex()
	}
	return nil
}
