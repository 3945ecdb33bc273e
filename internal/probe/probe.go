package probe

import (
	"context"
	"fmt"
	"time"

	"LaunchpadPlatform/pkg/errors"
	"LaunchpadPlatform/pkg/logger"
	pkg_redis "LaunchpadPlatform/pkg/redis"
)

// StatusKey фиксированный ключ статусной записи во внешнем кеше
const StatusKey = "myMessage"

// Store узкий интерфейс к внешнему кеш-хранилищу
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Prober пишет статусную запись с текущим временем под фиксированным
// ключом и сразу читает ее обратно, проверяя круговой путь через
// внешнее хранилище. Не хранит изменяемого состояния и безопасен для
// конкурентных вызовов.
type Prober struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

// NewProber создает новый Prober
func NewProber(store Store, log logger.Logger) *Prober {
	return &Prober{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// Probe записывает статусную запись и возвращает значение, прочитанное
// из хранилища (не локально построенное). Ошибки хранилища не ретраятся
// и отдаются вызывающей стороне как есть.
func (p *Prober) Probe(ctx context.Context) (string, error) {
	value := fmt.Sprintf("Hello World %d!\n", p.now().UnixMilli())

	if err := p.store.Set(ctx, StatusKey, value); err != nil {
		p.logger.Error("Failed to write status record",
			logger.String("key", StatusKey),
			logger.Error(err))
		return "", err
	}

	stored, err := p.store.Get(ctx, StatusKey)
	if err != nil {
		p.logger.Error("Failed to read status record back",
			logger.String("key", StatusKey),
			logger.Error(err))
		return "", err
	}

	p.logger.Debug("Status record round-trip complete",
		logger.String("key", StatusKey))

	return stored, nil
}

// CacheObserver учитывает исходы операций с кешем
type CacheObserver interface {
	ObserveCacheOperation(operation string, err error)
}

// RedisStore реализация Store на основе Redis
type RedisStore struct {
	redisClient *pkg_redis.Client
	observer    CacheObserver
}

// NewRedisStore создает новое хранилище на основе Redis.
// observer может быть nil, тогда операции не учитываются.
func NewRedisStore(redisClient *pkg_redis.Client, observer CacheObserver) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		observer:    observer,
	}
}

// Set сохраняет значение под ключом без срока жизни
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	err := s.redisClient.Client.Set(ctx, key, value, 0).Err()
	s.observe("set", err)
	if err != nil {
		return errors.Wrap(err, errors.ErrCacheUnavailable, "failed to set value in cache")
	}
	return nil
}

// Get возвращает значение по ключу
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redisClient.Client.Get(ctx, key).Result()
	s.observe("get", err)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCacheUnavailable, "failed to get value from cache")
	}
	return value, nil
}

func (s *RedisStore) observe(operation string, err error) {
	if s.observer != nil {
		s.observer.ObserveCacheOperation(operation, err)
	}
}
