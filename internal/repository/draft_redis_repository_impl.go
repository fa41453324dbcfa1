package repository

import (
	"context"
	"errors"
	"time"

	"hospital-admin/internal/domain/entity"
	domainRepo "hospital-admin/internal/domain/repository"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisDraftKeyPrefix namespaces form drafts in Redis
const RedisDraftKeyPrefix = "doctor_form:draft:"

type redisDraftRepository struct {
	client *redis.Client
}

func NewRedisDraftRepository(client *redis.Client) domainRepo.DraftRepository {
	return &redisDraftRepository{client: client}
}

func (r *redisDraftRepository) Find(ctx context.Context, sessionID string) (*entity.DoctorFormData, error) {
	raw, err := r.client.Get(ctx, RedisDraftKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var data entity.DoctorFormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *redisDraftRepository) Save(ctx context.Context, sessionID string, data entity.DoctorFormData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, RedisDraftKeyPrefix+sessionID, raw, ttl).Err()
}

func (r *redisDraftRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, RedisDraftKeyPrefix+sessionID).Err()
}
