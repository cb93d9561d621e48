package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/design-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	TasksCollection   = "tasks"
	MembersCollection = "members"
)

// taskDocument is the BSON shape of a task
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TaskName    string             `bson:"taskName"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	TaskType    string             `bson:"taskType"`
	Tags        string             `bson:"tags"`
	Assignee    string             `bson:"assignee"`
	ReceivedBy  string             `bson:"receivedBy"`
	Delivery    string             `bson:"delivery"`
	AttachFile  string             `bson:"attachFile"`
	ProductDoc  string             `bson:"productDoc"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newTaskDocument(t *models.Task) taskDocument {
	return taskDocument{
		TaskName:    t.TaskName,
		Description: t.Description,
		Status:      t.Status,
		TaskType:    t.TaskType,
		Tags:        t.Tags,
		Assignee:    t.Assignee,
		ReceivedBy:  t.ReceivedBy,
		Delivery:    t.Delivery,
		AttachFile:  t.AttachFile,
		ProductDoc:  t.ProductDoc,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDocument) toModel() models.Task {
	return models.Task{
		ID:          d.ID.Hex(),
		TaskName:    d.TaskName,
		Description: d.Description,
		Status:      d.Status,
		TaskType:    d.TaskType,
		Tags:        d.Tags,
		Assignee:    d.Assignee,
		ReceivedBy:  d.ReceivedBy,
		Delivery:    d.Delivery,
		AttachFile:  d.AttachFile,
		ProductDoc:  d.ProductDoc,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// MongoTaskRepository is a MongoDB implementation of TaskRepository
type MongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a TaskRepository over the tasks collection
func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{collection: db.Collection(TasksCollection)}
}

// List retrieves all tasks, most recently updated first
func (r *MongoTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: models.FieldUpdatedAt, Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toModel())
	}
	return tasks, nil
}

// Create inserts a task under a fresh ObjectID
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	doc := newTaskDocument(task)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	task.ID = doc.ID.Hex()
	return nil
}

// FindByID finds a task by its hex ObjectID
func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	task := doc.toModel()
	return &task, nil
}

// Update applies $set with the given fields and returns the updated document
func (r *MongoTaskRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Task, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M(fields)}, opts).Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}
	task := doc.toModel()
	return &task, nil
}

// Delete removes a task permanently
func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid identifier %q: %w", id, err)
	}
	return objectID, nil
}

func translateMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// EnsureIndexes creates the indexes both collections rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MembersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create members index: %w", err)
	}

	_, err = db.Collection(TasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: models.FieldUpdatedAt, Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create tasks index: %w", err)
	}
	return nil
}
