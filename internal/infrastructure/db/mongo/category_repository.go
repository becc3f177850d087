package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

const categoriesCollection = "categories"

// CategoryRepository implements ports.CategoryRepository using MongoDB.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(categoriesCollection)}
}

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"owner"`
	ParentLabel string             `bson:"parent_label"`
	ChildLabel  string             `bson:"child_label"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// Insert stores one category. The unique (owner, parent, child) index maps a
// duplicate pair to domain.ErrDuplicateLabel.
func (r *CategoryRepository) Insert(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toCategoryDoc(category))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateLabel
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	created := *category
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// InsertBatch stores several categories in one write (default seeding).
func (r *CategoryRepository) InsertBatch(ctx context.Context, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(categories))
	for i, c := range categories {
		docs[i] = toCategoryDoc(c)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

// List returns the owner's categories in insertion order, optionally filtered
// to one parent label.
func (r *CategoryRepository) List(ctx context.Context, owner string, parent domain.ParentLabel) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"owner": owner}
	if parent != "" {
		query["parent_label"] = string(parent)
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	for cursor.Next(ctx) {
		var doc categoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, toCategory(doc))
	}
	return categories, cursor.Err()
}

func (r *CategoryRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// DeleteByChildLabel removes every row with the child label under any parent.
func (r *CategoryRepository) DeleteByChildLabel(ctx context.Context, owner, childLabel string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"owner": owner, "child_label": childLabel})
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *CategoryRepository) DeleteByOwner(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"owner": owner}); err != nil {
		return fmt.Errorf("purge categories: %w", err)
	}
	return nil
}

// EnsureIndexes creates the tenant index and the uniqueness guard on
// (owner, parent_label, child_label).
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "parent_label", Value: 1},
				{Key: "child_label", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toCategoryDoc(c *domain.Category) categoryDoc {
	return categoryDoc{
		Owner:       c.Owner,
		ParentLabel: string(c.ParentLabel),
		ChildLabel:  c.ChildLabel,
		CreatedAt:   c.CreatedAt,
	}
}

func toCategory(doc categoryDoc) *domain.Category {
	return &domain.Category{
		ID:          doc.ID.Hex(),
		Owner:       doc.Owner,
		ParentLabel: domain.ParentLabel(doc.ParentLabel),
		ChildLabel:  doc.ChildLabel,
		CreatedAt:   doc.CreatedAt,
	}
}
