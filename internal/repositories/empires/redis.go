package empires

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
)

const (
	empireKeyPrefix = "empire:"
	nameIndexPrefix = "empire:name:"

	errEmpireNil     = "empire cannot be nil"
	errEmpireIDEmpty = "empire ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis empire repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed empire repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func empireKey(id entities.EmpireID) string {
	return empireKeyPrefix + id.String()
}

func nameKey(name string) string {
	return nameIndexPrefix + name
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID.IsZero() {
		return nil, errors.InvalidArgument(errEmpireIDEmpty)
	}

	result, err := r.client.Get(ctx, empireKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("empire %s not found", input.ID)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get empire %s", input.ID)
	}

	var empire entities.Empire
	if err := json.Unmarshal([]byte(result), &empire); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal empire %s", input.ID)
	}

	return &GetOutput{Empire: &empire}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Empire == nil {
		return nil, errors.InvalidArgument(errEmpireNil)
	}

	out, err := r.PutAll(ctx, PutAllInput{Empires: []*entities.Empire{input.Empire}})
	if err != nil {
		return nil, err
	}

	return &PutOutput{Empire: out.Empires[0]}, nil
}

func (r *redisRepository) PutAll(ctx context.Context, input PutAllInput) (*PutAllOutput, error) {
	if len(input.Empires) == 0 {
		return nil, errors.InvalidArgument("no empires to persist")
	}

	pipe := r.client.TxPipeline()
	for _, empire := range input.Empires {
		if empire == nil {
			return nil, errors.InvalidArgument(errEmpireNil)
		}
		if empire.ID.IsZero() {
			return nil, errors.InvalidArgument(errEmpireIDEmpty)
		}

		data, err := json.Marshal(empire)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal empire %s", empire.ID)
		}

		pipe.Set(ctx, empireKey(empire.ID), data, 0)
		pipe.Set(ctx, nameKey(empire.Name), empire.ID.String(), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to persist empires")
	}

	return &PutAllOutput{Empires: input.Empires}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID.IsZero() {
		return nil, errors.InvalidArgument(errEmpireIDEmpty)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, empireKey(input.ID))
	if input.Name != "" {
		pipe.Del(ctx, nameKey(input.Name))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to delete empire %s", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListAll(ctx context.Context) (*ListAllOutput, error) {
	keys, err := scanKeys(ctx, r.client, empireKeyPrefix+"*")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan empire keys")
	}

	// empire:name:* index entries match the row pattern too
	rowKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if len(key) >= len(nameIndexPrefix) && key[:len(nameIndexPrefix)] == nameIndexPrefix {
			continue
		}
		rowKeys = append(rowKeys, key)
	}

	out := &ListAllOutput{}
	if len(rowKeys) == 0 {
		return out, nil
	}

	values, err := r.client.MGet(ctx, rowKeys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load empire rows")
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var empire entities.Empire
		if err := json.Unmarshal([]byte(raw), &empire); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal empire row %s", rowKeys[i])
		}
		out.Empires = append(out.Empires, &empire)
	}

	return out, nil
}

func scanKeys(ctx context.Context, client redisclient.Client, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
