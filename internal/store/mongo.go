package store

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
)

// DefaultConnectTimeout bounds the initial connectivity check, so that an
// unreachable server fails fast instead of looking like a slow one.
const DefaultConnectTimeout = 5 * time.Second

// Mongo is the MongoDB-backed Store.
type Mongo struct {
	client  *mongo.Client
	db      *mongo.Database
	session mongo.Session
}

// Connect dials the MongoDB server, verifies it is reachable within the
// timeout, and verifies that the named database exists there.
func Connect(ctx context.Context, uri, databaseName string, timeout time.Duration) (*Mongo, error) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetDirect(true).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB server: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB server unreachable: %w", err)
	}

	databaseNames, err := client.ListDatabaseNames(pingCtx, bson.D{})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("listing databases: %w", err)
	}
	found := false
	for _, name := range databaseNames {
		if name == databaseName {
			found = true
			break
		}
	}
	if !found {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database %q not found on the MongoDB server", databaseName)
	}

	return &Mongo{client: client, db: client.Database(databaseName)}, nil
}

// WithSession returns a view of the store bound to the session, so that reads
// reflect the session's pending, uncommitted transaction. Used for pre-commit
// integrity checks.
func (m *Mongo) WithSession(session mongo.Session) *Mongo {
	return &Mongo{client: m.client, db: m.db, session: session}
}

// Close disconnects from the server.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) context(ctx context.Context) context.Context {
	if m.session != nil {
		return mongo.NewSessionContext(ctx, m.session)
	}
	return ctx
}

// CollectionNames implements Store.
func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(m.context(ctx), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return names, nil
}

// HasDocumentWithID implements Store, projecting only the storage identifier.
func (m *Mongo) HasDocumentWithID(ctx context.Context, collectionName, documentID string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})
	err := m.db.Collection(collectionName).
		FindOne(m.context(ctx), bson.D{{Key: "id", Value: documentID}}, opts).
		Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s for id %q: %w", collectionName, documentID, err)
	}
	return true, nil
}

// CountDocumentsHavingFields implements Store.
func (m *Mongo) CountDocumentsHavingFields(ctx context.Context, collectionName string, fieldNames []string) (int64, error) {
	count, err := m.db.Collection(collectionName).CountDocuments(m.context(ctx), existsFilter(fieldNames))
	if err != nil {
		return 0, fmt.Errorf("counting documents in %s: %w", collectionName, err)
	}
	return count, nil
}

// FindDocumentsHavingFields implements Store.
func (m *Mongo) FindDocumentsHavingFields(ctx context.Context, collectionName string, fieldNames, projection []string) (Cursor, error) {
	fields := bson.D{}
	for _, name := range projection {
		fields = append(fields, bson.E{Key: name, Value: 1})
	}
	cursor, err := m.db.Collection(collectionName).
		Find(m.context(ctx), existsFilter(fieldNames), options.Find().SetProjection(fields))
	if err != nil {
		return nil, fmt.Errorf("reading documents from %s: %w", collectionName, err)
	}
	return &mongoCursor{cursor: cursor}, nil
}

// FindReferringDocuments implements Store as one disjunctive query.
func (m *Mongo) FindReferringDocuments(ctx context.Context, collectionName string, pairs []TypeFieldPair, value string) ([]Descriptor, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	terms := make(bson.A, 0, len(pairs))
	for _, pair := range pairs {
		terms = append(terms, bson.D{
			{Key: "type", Value: pair.TypeValue},
			{Key: pair.FieldName, Value: value},
		})
	}
	filter := bson.D{{Key: "$or", Value: terms}}
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "id", Value: 1},
		{Key: "type", Value: 1},
	})
	cursor, err := m.db.Collection(collectionName).Find(m.context(ctx), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying %s for referring documents: %w", collectionName, err)
	}
	defer cursor.Close(ctx)

	var descriptors []Descriptor
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding document from %s: %w", collectionName, err)
		}
		descriptors = append(descriptors, DescribeDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents of %s: %w", collectionName, err)
	}
	return descriptors, nil
}

// existsFilter selects documents having at least one of the named fields.
func existsFilter(fieldNames []string) bson.D {
	terms := make(bson.A, 0, len(fieldNames))
	for _, name := range fieldNames {
		terms = append(terms, bson.D{{Key: name, Value: bson.D{{Key: "$exists", Value: true}}}})
	}
	return bson.D{{Key: "$or", Value: terms}}
}

// FormatStorageID renders a storage identifier value as a string. ObjectIDs
// become their hex form; anything else is printed as-is.
func FormatStorageID(value any) string {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DescribeDocument extracts a Descriptor from a decoded document.
func DescribeDocument(doc Document) Descriptor {
	d := Descriptor{StorageID: FormatStorageID(doc["_id"])}
	if id, ok := doc["id"].(string); ok {
		d.ID = id
	}
	if typeTag, ok := doc["type"].(string); ok {
		d.Type = typeTag
	}
	return d
}

type mongoCursor struct {
	cursor *mongo.Cursor
}

func (c *mongoCursor) Next(ctx context.Context) bool { return c.cursor.Next(ctx) }

func (c *mongoCursor) Document() (Document, error) {
	var doc bson.M
	if err := c.cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

func (c *mongoCursor) Err() error { return c.cursor.Err() }

func (c *mongoCursor) Close(ctx context.Context) error { return c.cursor.Close(ctx) }
