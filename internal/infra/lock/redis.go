package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/marcou-app/marcou/internal/httperr"
)

// StaffLocker serializa reservas por (empresa, profissional) entre
// instâncias do serviço.
type StaffLocker interface {
	Acquire(ctx context.Context, companyID, staffID uint) (release func(), err error)
}

const (
	lockTTL      = 5 * time.Second
	lockRetries  = 20
	lockRetryGap = 50 * time.Millisecond
)

// compare-and-delete: só remove a chave se o token ainda for nosso.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

type RedisStaffLock struct {
	client *redis.Client
}

func NewRedisStaffLock(redisURL string) (*RedisStaffLock, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStaffLock{client: redis.NewClient(opts)}, nil
}

func (l *RedisStaffLock) Acquire(
	ctx context.Context,
	companyID uint,
	staffID uint,
) (func(), error) {

	key := fmt.Sprintf("marcou:booking:%d:%d", companyID, staffID)
	token := uuid.NewString()

	for i := 0; i < lockRetries; i++ {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				releaseScript.Run(context.Background(), l.client, []string{key}, token)
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryGap):
		}
	}

	return nil, httperr.ErrBusiness("time_conflict")
}

var _ StaffLocker = (*RedisStaffLock)(nil)
