package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamedesk/internal/model"
)

type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	ListByToken(ctx context.Context, token string) ([]*model.Session, error)
	ListUnbilledByToken(ctx context.Context, token string) ([]*model.Session, error)
	ListActive(ctx context.Context) ([]*model.Session, error)
	MarkBilled(ctx context.Context, ids []string) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Session not found
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepo) ListByToken(ctx context.Context, token string) ([]*model.Session, error) {
	return r.find(ctx, bson.M{"token": token})
}

func (r *sessionRepo) ListUnbilledByToken(ctx context.Context, token string) ([]*model.Session, error) {
	return r.find(ctx, bson.M{"token": token, "billed": false})
}

func (r *sessionRepo) ListActive(ctx context.Context) ([]*model.Session, error) {
	return r.find(ctx, bson.M{"status": model.SessionActive})
}

func (r *sessionRepo) MarkBilled(ctx context.Context, ids []string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"billed": true}},
	)
	return err
}

func (r *sessionRepo) find(ctx context.Context, filter bson.M) ([]*model.Session, error) {
	opts := options.Find().SetSort(bson.M{"startedAt": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
