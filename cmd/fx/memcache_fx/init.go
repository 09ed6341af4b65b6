package memcache_fx

import (
	"time"

	"go.uber.org/fx"
	mem "wanderwise/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens(10 * time.Minute)
}
