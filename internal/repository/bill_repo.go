package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamedesk/internal/model"
)

type BillRepo interface {
	Create(ctx context.Context, bill *model.Bill) error
	GetByID(ctx context.Context, id string) (*model.Bill, error)
	ListUnpaid(ctx context.Context) ([]*model.Bill, error)
	Settle(ctx context.Context, id string, correctedAmount *float64, settledAt time.Time) error
}

type billRepo struct {
	collection *mongo.Collection
}

func NewBillRepo(db *mongo.Database) BillRepo {
	return &billRepo{
		collection: db.Collection("bills"),
	}
}

func (r *billRepo) Create(ctx context.Context, bill *model.Bill) error {
	_, err := r.collection.InsertOne(ctx, bill)
	return err
}

func (r *billRepo) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	var bill model.Bill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Bill not found
		}
		return nil, err
	}

	return &bill, nil
}

func (r *billRepo) ListUnpaid(ctx context.Context) ([]*model.Bill, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"status": model.BillOpen}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*model.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) Settle(ctx context.Context, id string, correctedAmount *float64, settledAt time.Time) error {
	update := bson.M{
		"status":    model.BillPaid,
		"settledAt": settledAt,
	}
	if correctedAmount != nil {
		update["correctedAmount"] = *correctedAmount
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}
