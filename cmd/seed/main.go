package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamedesk/config"
	"gamedesk/internal/cache"
	"gamedesk/internal/model"
	"gamedesk/internal/pricing"
	"gamedesk/internal/repository"
)

// Seeds the device inventory from the rate card plus a couple of demo
// sessions so the floor view has something to show.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.Mongo.Database)
	deviceRepo := repository.NewDeviceRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	floorCache := cache.NewFloorCache(rdb)

	inventory := []struct {
		name       string
		deviceType model.DeviceType
		count      int
	}{
		{"PS4", model.DevicePS4, 4},
		{"PS5", model.DevicePS5, 3},
		{"Racing Rig", model.DeviceRacing, 1},
		{"VR", model.DeviceVR, 2},
		{"VR Racing", model.DeviceVRRacing, 1},
		{"Pool Table", model.DeviceBilliards, 2},
		{"Party Frame", model.DeviceFrame, 1},
	}

	var devices []*model.Device
	for _, item := range inventory {
		for i := 1; i <= item.count; i++ {
			device := &model.Device{
				ID:         fmt.Sprintf("%s-%d", item.deviceType, i),
				Name:       fmt.Sprintf("%s #%d", item.name, i),
				Type:       item.deviceType,
				HourlyRate: pricing.HourlyBase(item.deviceType, 1),
				Active:     true,
			}
			if err := deviceRepo.Upsert(ctx, device); err != nil {
				log.Fatalf("failed to seed device %s: %v", device.ID, err)
			}
			devices = append(devices, device)
		}
	}
	log.Printf("seeded %d devices", len(devices))

	// Demo floor: one running console session and one ended, unbilled VR
	// session under the same token.
	now := time.Now()
	ended := now.Add(-10 * time.Minute)
	frozenMinutes := 65
	frozenCost := pricing.CalculatePrice(model.DeviceVR, 1, frozenMinutes, pricing.HourlyBase(model.DeviceVR, 1))

	sessions := []*model.Session{
		{
			ID:          uuid.New().String(),
			Token:       "T-100",
			DeviceID:    "PS5-1",
			DeviceType:  model.DevicePS5,
			DeviceName:  "PS5 #1",
			PlayerCount: 2,
			Status:      model.SessionActive,
			StartedAt:   now.Add(-25 * time.Minute),
			HourlyRate:  pricing.HourlyBase(model.DevicePS5, 2),
		},
		{
			ID:          uuid.New().String(),
			Token:       "T-100",
			DeviceID:    "VR-1",
			DeviceType:  model.DeviceVR,
			DeviceName:  "VR #1",
			PlayerCount: 1,
			Status:      model.SessionEnded,
			StartedAt:   ended.Add(-time.Duration(frozenMinutes) * time.Minute),
			EndedAt:     &ended,
			Duration:    frozenMinutes,
			Cost:        &frozenCost,
			HourlyRate:  pricing.HourlyBase(model.DeviceVR, 1),
		},
	}

	for _, session := range sessions {
		if err := sessionRepo.Create(ctx, session); err != nil {
			log.Fatalf("failed to seed session %s: %v", session.ID, err)
		}
		if session.Status == model.SessionActive {
			if err := floorCache.Add(ctx, session.ID, session.StartedAt.Unix()); err != nil {
				log.Fatalf("failed to index session %s on the floor: %v", session.ID, err)
			}
		}
	}
	log.Printf("seeded %d sessions under token T-100", len(sessions))
}
