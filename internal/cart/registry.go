package cart

import (
	"sync"

	"github.com/mmeshcher/feedcalc/internal/model"
)

// Session содержит корзину и закреплённый выбор корма одного пользователя.
type Session struct {
	Cart   Cart
	Pinned *model.FeedProduct
}

// Pin закрепляет копию выбранного корма для следующего добавления в корзину.
func (s *Session) Pin(p model.FeedProduct) {
	s.Pinned = &p
}

// Unpin сбрасывает закреплённый выбор.
func (s *Session) Unpin() {
	s.Pinned = nil
}

// Registry хранит сессии корзин по идентификатору сессии.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry создаёт пустой реестр сессий.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// With выполняет fn над сессией под блокировкой и возвращает её ошибку. Новая сессия создаётся пустой.
func (r *Registry) With(sessionID string, fn func(s *Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return fn(r.session(sessionID))
}

// Do выполняет fn над сессией под блокировкой.
func (r *Registry) Do(sessionID string, fn func(s *Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.session(sessionID))
}

func (r *Registry) session(sessionID string) *Session {
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &Session{}
		r.sessions[sessionID] = s
	}
	return s
}

// Discard удаляет сессию без сохранения.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
