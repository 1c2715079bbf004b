package service

import (
	"math/rand/v2"
	"sync"
)

// HubSelector назначает заказу склад
type HubSelector interface {
	Choose() int64
}

// RandomHubSelector равновероятно выбирает один из настроенных складов.
// Загрузку складов не учитывает.
type RandomHubSelector struct {
	mu  sync.Mutex
	ids []int64
	rnd *rand.Rand
}

// NewRandomHubSelector panics on an empty id list; config validation rejects it earlier.
func NewRandomHubSelector(ids []int64, rnd *rand.Rand) *RandomHubSelector {
	if len(ids) == 0 {
		panic("hub selector: no hub ids")
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomHubSelector{ids: append([]int64(nil), ids...), rnd: rnd}
}

func (s *RandomHubSelector) Choose() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[s.rnd.IntN(len(s.ids))]
}

// FixedHubSelector всегда возвращает один и тот же склад
type FixedHubSelector int64

func (f FixedHubSelector) Choose() int64 { return int64(f) }
