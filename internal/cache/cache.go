package cache

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/config"

	"github.com/valkey-io/valkey-go"
)

var (
	once         sync.Once
	valkeyClient valkey.Client
)

func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()

		options := valkey.ClientOption{
			InitAddress:  []string{env.ValkeyHost + ":" + env.ValkeyPort},
			Password:     env.ValkeyPassword,
			Username:     env.ValkeyUsername,
			DisableCache: true,
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{
				ServerName: env.ValkeyHost,
			}
		}

		client, err := valkey.NewClient(options)
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

func Ping(client valkey.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Do(ctx, client.B().Ping().Build()).Error()
}
