package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kalender/internal/domain"
)

type participationRepository struct {
	coll *mongo.Collection
}

func NewParticipationRepository(db *mongo.Database) domain.ParticipationRepository {
	return &participationRepository{
		coll: db.Collection(participantsCollection),
	}
}

func (r *participationRepository) Create(ctx context.Context, p *domain.Participation) error {
	eventID, err := objectID(p.EventID)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, newParticipationDocument(p, eventID))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateParticipation
		}
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	p.ID = oid.Hex()
	return nil
}

func (r *participationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	parts := make([]*domain.Participation, 0)
	oid, err := objectID(eventID)
	if errors.Is(err, domain.ErrNotFound) {
		return parts, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"eventId": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc participationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		parts = append(parts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *participationRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	oid, err := objectID(eventID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"eventId": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
