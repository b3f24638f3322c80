package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage is a Storage implementation backed by MongoDB. Document field
// names come from the bson tags on Notification, so the filter and sort keys
// below must stay in sync with those tags.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a Mongo-backed notification storage using the
// "notifications" collection of the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection("notifications")}
}

func (s *MongoStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return ErrEmptyNotificationID
	}
	if notif.Target.IsZero() {
		return ErrEmptyTarget
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	if _, err := s.coll.InsertOne(ctx, notif); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, target TargetRef, notifID string) (*Notification, error) {
	var notif Notification
	err := s.coll.FindOne(ctx, s.filter(target, bson.M{"id": notifID})).Decode(&notif)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &notif, nil
}

func (s *MongoStorage) List(ctx context.Context, target TargetRef, opts ListOptions) ([]Notification, error) {
	filter := s.filter(target, bson.M{
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$exists": false}},
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now()}},
		},
	})
	if opts.OnlyUnread {
		filter["read"] = false
	}
	if len(opts.Types) > 0 {
		filter["type"] = bson.M{"$in": opts.Types}
	}
	if opts.Since != nil {
		filter["created_at"] = bson.M{"$gt": *opts.Since}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifs := []Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifs, nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, target TargetRef, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	_, err := s.coll.UpdateMany(ctx,
		s.filter(target, bson.M{"id": bson.M{"$in": notifIDs}, "read": false}),
		bson.M{"$set": bson.M{"read": true, "read_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (s *MongoStorage) Delete(ctx context.Context, target TargetRef, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	_, err := s.coll.DeleteMany(ctx, s.filter(target, bson.M{"id": bson.M{"$in": notifIDs}}))
	if err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, target TargetRef) (int, error) {
	count, err := s.coll.CountDocuments(ctx, s.filter(target, bson.M{
		"read": false,
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$exists": false}},
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now()}},
		},
	}))
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return int(count), nil
}

func (s *MongoStorage) filter(target TargetRef, extra bson.M) bson.M {
	filter := bson.M{
		"target.kind": target.Kind,
		"target.id":   target.ID,
	}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}
