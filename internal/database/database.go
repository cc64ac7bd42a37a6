package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned by journal stores when the requested entry does not exist.
var ErrNotFound = errors.New("journal not found")

const defaultMongoDatabase = "mindjournal"

// ConnectMongo dials MongoDB, verifies the connection and returns the database
// named in the URI path (or "mindjournal" when the URI names none).
func ConnectMongo(mongoURI string, logger *zap.Logger) (*mongo.Database, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	logger.Info("Connecting to MongoDB...", zap.String("uri", maskURI(mongoURI)))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("✅ Connected to MongoDB")
	return client.Database(mongoDatabaseName(mongoURI)), nil
}

// DisconnectMongo closes the client behind db.
func DisconnectMongo(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}

// mongoDatabaseName extracts the database from mongodb://host/<name>?opts.
func mongoDatabaseName(mongoURI string) string {
	rest := mongoURI
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return defaultMongoDatabase
	}
	name := strings.Split(rest[idx+1:], "?")[0]
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

// maskURI hides the password of user:password@host URIs for logging.
func maskURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	if scheme == -1 || scheme > at {
		return uri
	}
	userInfo := uri[scheme+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:scheme+3] + userInfo[:colon] + ":***" + uri[at:]
}
