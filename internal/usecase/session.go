package usecase

import (
	"sync"
	"time"

	"kiosk/internal/domain/cart"
)

type session struct {
	cart     *cart.Cart
	lastSeen time.Time
}

// キオスクのセッションID → カート。
// カートはセッションの間だけメモリに置く。
type SessionRegistry struct {
	mu    sync.RWMutex
	items map[string]*session
	now   func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		items: make(map[string]*session),
		now:   time.Now,
	}
}

// 無ければ空のカートを作って返す
func (s *SessionRegistry) Cart(sessionID string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss, ok := s.items[sessionID]
	if !ok {
		ss = &session{cart: cart.New()}
		s.items[sessionID] = ss
	}
	ss.lastSeen = s.now()
	return ss.cart
}

func (s *SessionRegistry) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, sessionID)
}

func (s *SessionRegistry) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// maxIdle より長く触られていないセッションを捨てる。送信中のカートは残す。
func (s *SessionRegistry) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, ss := range s.items {
		if ss.lastSeen.Before(cutoff) && !ss.cart.Submitting() {
			delete(s.items, id)
			n++
		}
	}
	return n
}
