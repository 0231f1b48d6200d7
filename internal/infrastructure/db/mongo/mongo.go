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

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Collection names match the ones created by the previous deployment so
// existing data is picked up unchanged.
const (
	collectionAdmins     = "admins"
	collectionEmployees  = "employees"
	collectionCompanies  = "companies"
	collectionFeedback   = "feedbacks"
	collectionProperties = "properties"
	collectionBookmarks  = "bookmarks"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Ping returns a readiness check for db.
func Ping(db *mongo.Database) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collectionAdmins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "companyName", Value: 1}}},
		},
		collectionEmployees: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "admin", Value: 1}}},
		},
		collectionCompanies: {
			{Keys: bson.D{{Key: "admin", Value: 1}}, Options: unique},
		},
		collectionFeedback: {
			{Keys: bson.D{{Key: "admin", Value: 1}, {Key: "sentAt", Value: -1}}},
			{Keys: bson.D{{Key: "senderEmail", Value: 1}}},
			{Keys: bson.D{{Key: "receiverEmail", Value: 1}}},
		},
		collectionProperties: {
			{Keys: bson.D{{Key: "admin", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		collectionBookmarks: {
			{
				Keys:    bson.D{{Key: "ownerKind", Value: 1}, {Key: "owner", Value: 1}, {Key: "property", Value: 1}},
				Options: unique,
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// objectID parses a hex id. Malformed ids are a client error, not a miss.
func objectID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// optionalObjectID parses hex, returning NilObjectID for an empty string.
func optionalObjectID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	return objectID(hex)
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

// exactInsensitive matches the whole of s ignoring case. s is escaped so
// user input cannot inject a pattern.
func exactInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// findOne decodes the first match into out, mapping a miss to notFound.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := coll.FindOne(ctx, filter).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound
		}
		return fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
