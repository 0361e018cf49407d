package tenant

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoProvider resolves tenants with a direct query against the host
// database's tenants collection, keyed by normalized name.
type MongoProvider struct {
	coll *mongo.Collection
}

// NewMongoProvider creates a provider over the given tenants collection.
func NewMongoProvider(coll *mongo.Collection) *MongoProvider {
	return &MongoProvider{coll: coll}
}

// Resolve finds the tenant whose normalized name matches the uppercased
// subdomain, excluding soft-deleted and disabled records. Like the HTTP
// provider, every failure collapses into ErrTenantNotFound.
func (p *MongoProvider) Resolve(ctx context.Context, subdomain string) (*Info, error) {
	filter := bson.M{
		"normalizedName": normalize(subdomain),
		"isDeleted":      bson.M{"$ne": true},
		"isActive":       true,
	}

	var info Info
	if err := p.coll.FindOne(ctx, filter).Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrTenantNotFound, err)
	}

	return &info, nil
}
