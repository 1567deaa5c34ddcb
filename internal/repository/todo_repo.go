package repository

import (
	"context"
	"errors"
	"fmt"

	"slack-bridge/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrNotFound = errors.New("document not found")

type TodoRepo struct {
	collection    *mongo.Collection
	transactional bool
}

// NewTodoRepo returns a repository over the "todos" collection. When
// transactional is set, WithTransaction runs its callback in a multi-document
// transaction, which requires a replica set or sharded cluster.
func NewTodoRepo(db *mongo.Database, transactional bool) *TodoRepo {
	return &TodoRepo{
		collection:    db.Collection("todos"),
		transactional: transactional,
	}
}

func (r *TodoRepo) Insert(ctx context.Context, todo *models.Todo) error {
	result, err := r.collection.InsertOne(ctx, todo)
	if err != nil {
		return err
	}
	todo.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// Update rewrites the text and updated_at of an existing todo.
func (r *TodoRepo) Update(ctx context.Context, todo *models.Todo) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": todo.ID}, bson.M{
		"$set": bson.M{
			"text":       todo.Text,
			"updated_at": todo.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the todo and returns it as it was stored.
func (r *TodoRepo) Delete(ctx context.Context, id bson.ObjectID) (*models.Todo, error) {
	var todo models.Todo
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Todo, error) {
	var todo models.Todo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// List returns all todos, oldest first.
func (r *TodoRepo) List(ctx context.Context) ([]models.Todo, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// WithTransaction runs fn inside a session transaction when the repository is
// transactional, and directly otherwise. An error from fn aborts the
// transaction. fn runs exactly once: its hooks post to Slack, which no abort
// can take back, so transient transaction errors are returned, not retried.
func (r *TodoRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactional {
		return fn(ctx)
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(context.Background())

	if err := session.StartTransaction(); err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	txCtx := mongo.NewSessionContext(ctx, session)
	if err := fn(txCtx); err != nil {
		_ = session.AbortTransaction(context.Background())
		return err
	}
	if err := session.CommitTransaction(txCtx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes for the todos collection
func (r *TodoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	return err
}
