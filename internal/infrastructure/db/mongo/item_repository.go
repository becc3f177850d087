package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

const itemsCollection = "items"

const dateLayout = "2006-01-02"

// ItemRepository implements ports.ItemRepository using MongoDB. All items live
// in one collection scoped by the indexed owner field; image bytes are stored
// on the item document and excluded from every read except FindImage.
type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(itemsCollection)}
}

type itemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"owner"`
	ParentLabel string             `bson:"parent_label"`
	ChildLabel  string             `bson:"child_label"`
	Name        string             `bson:"name"`
	Note        string             `bson:"note,omitempty"`
	Suggestion  string             `bson:"suggestion,omitempty"`
	NamingRule  string             `bson:"naming_rule,omitempty"`
	Image       []byte             `bson:"image,omitempty"`
	HasImage    bool               `bson:"has_image"`
	CreatedDate string             `bson:"created_date"` // ISO 8601 date
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// listProjection excludes the image binary from list and find reads.
var listProjection = bson.M{"image": 0}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toItemDoc(item))
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, owner, id string) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	var doc itemDoc
	err = r.col.FindOne(ctx,
		bson.M{"_id": oid, "owner": owner},
		options.FindOne().SetProjection(listProjection),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return toItem(doc)
}

func (r *ItemRepository) FindImage(ctx context.Context, owner, id string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	var doc itemDoc
	err = r.col.FindOne(ctx,
		bson.M{"_id": oid, "owner": owner},
		options.FindOne().SetProjection(bson.M{"image": 1, "has_image": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item image: %w", err)
	}
	if !doc.HasImage {
		return nil, domain.ErrItemNotFound
	}
	return doc.Image, nil
}

// List returns a page of items matching filter, newest-first. A non-positive
// Limit disables pagination (used by the CSV export).
func (r *ItemRepository) List(ctx context.Context, filter ports.ListItemsFilter) ([]*domain.Item, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"owner": filter.Owner}
	if filter.ParentLabel != "" {
		query["parent_label"] = filter.ParentLabel
	}
	if filter.ChildLabel != "" {
		query["child_label"] = filter.ChildLabel
	}
	if filter.Query != "" {
		pattern := regexp.QuoteMeta(filter.Query)
		fields := []string{"name", "child_label", "parent_label", "note", "suggestion", "naming_rule"}
		or := make(bson.A, 0, len(fields))
		for _, f := range fields {
			or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
		}
		query["$or"] = or
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64(page-1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Item
	for cursor.Next(ctx) {
		var doc itemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode item: %w", err)
		}
		item, err := toItem(doc)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, cursor.Err()
}

// Update rewrites the item's stored fields. Image bytes are only touched when
// setImage is true, so edits without a new upload keep the existing photo.
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item, setImage bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrItemNotFound
	}

	set := bson.M{
		"parent_label": string(item.ParentLabel),
		"child_label":  item.ChildLabel,
		"name":         item.Name,
		"note":         item.Note,
		"suggestion":   item.Suggestion,
		"naming_rule":  item.NamingRule,
		"created_date": item.CreatedDate.Format(dateLayout),
		"updated_at":   item.UpdatedAt,
	}
	if setImage {
		set["image"] = item.Image
		set["has_image"] = item.HasImage
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "owner": item.Owner}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, owner, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "owner": owner})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteByOwner(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return fmt.Errorf("purge items: %w", err)
	}
	return nil
}

// EnsureIndexes creates the tenant and sort indexes on the items collection.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "child_label", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toItemDoc(item *domain.Item) itemDoc {
	return itemDoc{
		Owner:       item.Owner,
		ParentLabel: string(item.ParentLabel),
		ChildLabel:  item.ChildLabel,
		Name:        item.Name,
		Note:        item.Note,
		Suggestion:  item.Suggestion,
		NamingRule:  item.NamingRule,
		Image:       item.Image,
		HasImage:    item.HasImage,
		CreatedDate: item.CreatedDate.Format(dateLayout),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItem(doc itemDoc) (*domain.Item, error) {
	createdDate, err := time.Parse(dateLayout, doc.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("item %s: bad created_date %q: %w", doc.ID.Hex(), doc.CreatedDate, err)
	}
	return &domain.Item{
		ID:          doc.ID.Hex(),
		Owner:       doc.Owner,
		ParentLabel: domain.ParentLabel(doc.ParentLabel),
		ChildLabel:  doc.ChildLabel,
		Name:        doc.Name,
		Note:        doc.Note,
		Suggestion:  doc.Suggestion,
		NamingRule:  doc.NamingRule,
		Image:       doc.Image,
		HasImage:    doc.HasImage,
		CreatedDate: createdDate,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
