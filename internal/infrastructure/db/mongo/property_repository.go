package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(collectionProperties)}
}

type mongoProperty struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AdminID     primitive.ObjectID `bson:"admin"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Type        string             `bson:"type"`
	Status      string             `bson:"status"`
	Address     domain.Address     `bson:"address"`
	Price       float64            `bson:"price"`
	Bedrooms    int                `bson:"bedrooms,omitempty"`
	Bathrooms   int                `bson:"bathrooms,omitempty"`
	AreaSqm     float64            `bson:"areaSqm,omitempty"`
	Images      []string           `bson:"images"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m mongoProperty) toDomain() *domain.Property {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Property{
		ID:          m.ID.Hex(),
		AdminID:     m.AdminID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Type:        domain.PropertyType(m.Type),
		Status:      domain.PropertyStatus(m.Status),
		Address:     m.Address,
		Price:       m.Price,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		AreaSqm:     m.AreaSqm,
		Images:      images,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toMongoProperty(p *domain.Property) (mongoProperty, error) {
	adminID, err := objectID(p.AdminID)
	if err != nil {
		return mongoProperty{}, err
	}
	return mongoProperty{
		AdminID:     adminID,
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Address:     p.Address,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		AreaSqm:     p.AreaSqm,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	doc, err := toMongoProperty(p)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mongoProperty
	if err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc, domain.ErrPropertyNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns one page of the admin's properties, newest first, plus the
// total number of matches.
func (r *PropertyRepository) List(ctx context.Context, f ports.PropertyFilter) ([]*domain.Property, int64, error) {
	adminID, err := objectID(f.AdminID)
	if err != nil {
		return nil, 0, err
	}
	filter := bson.M{"admin": adminID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Search != "" {
		pattern := containsInsensitive(f.Search)
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"address.city": pattern},
		}
	}

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	total, err := r.coll.CountDocuments(countCtx, filter)
	cancel()
	if err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(f.Page-1) * int64(f.Limit)).
		SetLimit(int64(f.Limit))
	docs, err := findMany[mongoProperty](ctx, r.coll, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.Property, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	doc, err := toMongoProperty(p)
	if err != nil {
		return err
	}
	doc.ID = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrPropertyNotFound)
}

// BookmarkRepository implements ports.BookmarkRepository. A unique index on
// (ownerKind, owner, property) rejects duplicates.
type BookmarkRepository struct {
	coll *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{coll: db.Collection(collectionBookmarks)}
}

type mongoBookmark struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OwnerKind  string             `bson:"ownerKind"`
	OwnerID    primitive.ObjectID `bson:"owner"`
	PropertyID primitive.ObjectID `bson:"property"`
	Note       string             `bson:"note,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (m mongoBookmark) toDomain() *domain.Bookmark {
	return &domain.Bookmark{
		ID:         m.ID.Hex(),
		OwnerKind:  domain.PrincipalKind(m.OwnerKind),
		OwnerID:    m.OwnerID.Hex(),
		PropertyID: m.PropertyID.Hex(),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func (r *BookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	ownerID, err := objectID(b.OwnerID)
	if err != nil {
		return nil, err
	}
	propertyID, err := objectID(b.PropertyID)
	if err != nil {
		return nil, err
	}
	doc := mongoBookmark{
		ID:         primitive.NewObjectID(),
		OwnerKind:  string(b.OwnerKind),
		OwnerID:    ownerID,
		PropertyID: propertyID,
		Note:       b.Note,
		CreatedAt:  b.CreatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookmarkRepository) FindByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mongoBookmark
	if err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc, domain.ErrBookmarkNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *BookmarkRepository) ListByOwner(ctx context.Context, kind domain.PrincipalKind, ownerID string) ([]*domain.Bookmark, error) {
	oid, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := findMany[mongoBookmark](ctx, r.coll, bson.M{"ownerKind": string(kind), "owner": oid}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Bookmark, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrBookmarkNotFound)
}
