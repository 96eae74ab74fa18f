package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache do lado de leitura (consistência eventual é aceitável para
// exibição). Escritas de reserva invalidam a chave do dia.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// BusyKey identifica os intervalos ocupados de um profissional num dia.
// Uma chave por (profissional, dia): todos os serviços compartilham.
func BusyKey(professionalID uint, date string) string {
	return fmt.Sprintf("busy:%d:%s", professionalID, date)
}

type NoopCache struct{}

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}
