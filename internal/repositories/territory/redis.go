package territory

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
)

const (
	cellKeyPrefix = "territory:"

	errCellNil    = "cell cannot be nil"
	errWorldEmpty = "world cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis territory repository
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

// NewRedis creates a new Redis-backed territory repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func cellKey(key entities.CellKey) string {
	return fmt.Sprintf("%s%s:%d:%d", cellKeyPrefix, key.World, key.X, key.Z)
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key.World == "" {
		return nil, errors.InvalidArgument(errWorldEmpty)
	}

	result, err := r.client.Get(ctx, cellKey(input.Key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("cell %s:%d:%d not found", input.Key.World, input.Key.X, input.Key.Z)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get cell %v", input.Key)
	}

	var cell entities.TerritoryCell
	if err := json.Unmarshal([]byte(result), &cell); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cell %v", input.Key)
	}

	return &GetOutput{Cell: &cell}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Cell == nil {
		return nil, errors.InvalidArgument(errCellNil)
	}
	if input.Cell.World == "" {
		return nil, errors.InvalidArgument(errWorldEmpty)
	}

	data, err := json.Marshal(input.Cell)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal cell %v", input.Cell.Key())
	}

	if err := r.client.Set(ctx, cellKey(input.Cell.Key()), data, 0).Err(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to persist cell %v", input.Cell.Key())
	}

	return &PutOutput{Cell: input.Cell}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Key.World == "" {
		return nil, errors.InvalidArgument(errWorldEmpty)
	}

	if err := r.client.Del(ctx, cellKey(input.Key)).Err(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to delete cell %v", input.Key)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) DeleteMany(ctx context.Context, input DeleteManyInput) (*DeleteManyOutput, error) {
	if len(input.Keys) == 0 {
		return &DeleteManyOutput{}, nil
	}

	pipe := r.client.TxPipeline()
	for _, key := range input.Keys {
		pipe.Del(ctx, cellKey(key))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete cells")
	}

	return &DeleteManyOutput{Deleted: len(input.Keys)}, nil
}

func (r *redisRepository) ListAll(ctx context.Context) (*ListAllOutput, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, cellKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan cell keys")
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	out := &ListAllOutput{}
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load cell rows")
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var cell entities.TerritoryCell
		if err := json.Unmarshal([]byte(raw), &cell); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal cell row %s", keys[i])
		}
		out.Cells = append(out.Cells, &cell)
	}

	return out, nil
}
