package models

import "time"

// SyncClient представляет зарегистрированного на сервере клиента синхронизации
type SyncClient struct {
	CreatedAt  time.Time `json:"created_at"`  // время регистрации
	ID         string    `json:"id"`          // идентификатор клиента (используется как subject в JWT)
	SecretHash string    `json:"secret_hash"` // bcrypt хеш секрета клиента
}
