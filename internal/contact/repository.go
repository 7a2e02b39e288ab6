package contact

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, msg Message) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Message, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	GetByID(ctx context.Context, id string) (Message, error)
	UpdateStatus(ctx context.Context, id, status string, now time.Time) (Message, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, msg Message) error {
	_, err := r.col.InsertOne(ctx, msg)
	return err
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.col.Find(ctx, filterToBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Message, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, filterToBSON(filter))
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Message, error) {
	var msg Message
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	return msg, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id, status string, now time.Time) (Message, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updated_at": now}}

	var updated Message
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	return updated, nil
}

func filterToBSON(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

// MemoryRepository keeps messages in process. It backs the contact form
// when no database is configured, so submissions still reach the inbox
// by email and the admin list until restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Message)}
}

func (r *MemoryRepository) Create(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[msg.ID] = msg
	return nil
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter, limit, offset int) ([]Message, error) {
	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return []Message{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *MemoryRepository) Count(_ context.Context, filter ListFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.items[id]
	if !ok {
		return Message{}, ErrNotFound
	}
	return msg, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id, status string, now time.Time) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.items[id]
	if !ok {
		return Message{}, ErrNotFound
	}
	msg.Status = status
	msg.UpdatedAt = now
	r.items[id] = msg
	return msg, nil
}

func (r *MemoryRepository) matching(filter ListFilter) []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, 0, len(r.items))
	for _, msg := range r.items {
		if filter.Status != "" && msg.Status != filter.Status {
			continue
		}
		out = append(out, msg)
	}
	return out
}
