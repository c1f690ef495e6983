package players

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
)

const (
	playerKeyPrefix = "player:"

	errPlayerNil     = "player cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis player repository
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

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func playerKey(id entities.PlayerID) string {
	return playerKeyPrefix + id.String()
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID.IsZero() {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	result, err := r.client.Get(ctx, playerKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player %s not found", input.ID)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get player %s", input.ID)
	}

	var player entities.Player
	if err := json.Unmarshal([]byte(result), &player); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal player %s", input.ID)
	}

	return &GetOutput{Player: &player}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}
	if input.Player.ID.IsZero() {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	data, err := json.Marshal(input.Player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player %s", input.Player.ID)
	}

	if err := r.client.Set(ctx, playerKey(input.Player.ID), data, 0).Err(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to persist player %s", input.Player.ID)
	}

	return &PutOutput{Player: input.Player}, nil
}

func (r *redisRepository) PutAll(ctx context.Context, input PutAllInput) (*PutAllOutput, error) {
	if len(input.Players) == 0 {
		return nil, errors.InvalidArgument("no players to persist")
	}

	pipe := r.client.TxPipeline()
	for _, player := range input.Players {
		if player == nil {
			return nil, errors.InvalidArgument(errPlayerNil)
		}
		if player.ID.IsZero() {
			return nil, errors.InvalidArgument(errPlayerIDEmpty)
		}

		data, err := json.Marshal(player)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal player %s", player.ID)
		}

		pipe.Set(ctx, playerKey(player.ID), data, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to persist players")
	}

	return &PutAllOutput{Players: input.Players}, nil
}

func (r *redisRepository) ListAll(ctx context.Context) (*ListAllOutput, error) {
	keys, err := scanKeys(ctx, r.client, playerKeyPrefix+"*")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan player keys")
	}

	out := &ListAllOutput{}
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load player rows")
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// row deleted between SCAN and MGET
			continue
		}
		var player entities.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal player row %s", keys[i])
		}
		out.Players = append(out.Players, &player)
	}

	return out, nil
}

// scanKeys collects every key matching the pattern. Key spaces are
// small, one row per entity.
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
