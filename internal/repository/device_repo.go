package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamedesk/internal/model"
)

type DeviceRepo interface {
	Upsert(ctx context.Context, device *model.Device) error
	GetByID(ctx context.Context, id string) (*model.Device, error)
	List(ctx context.Context) ([]*model.Device, error)
}

type deviceRepo struct {
	collection *mongo.Collection
}

func NewDeviceRepo(db *mongo.Database) DeviceRepo {
	return &deviceRepo{
		collection: db.Collection("devices"),
	}
}

func (r *deviceRepo) Upsert(ctx context.Context, device *model.Device) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": device.ID}, device, opts)
	return err
}

func (r *deviceRepo) GetByID(ctx context.Context, id string) (*model.Device, error) {
	var device model.Device
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&device)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Device not found
		}
		return nil, err
	}

	return &device, nil
}

func (r *deviceRepo) List(ctx context.Context) ([]*model.Device, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []*model.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
