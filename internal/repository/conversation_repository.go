package repository

import (
	"errors"
	"sort"
	"sync"

	"satoshigpt/internal/model"
)

var ErrNotFound = errors.New("conversation not found")

// ConversationRepository keeps conversations in process memory.
// State is gone on restart; that is the intended lifetime.
type ConversationRepository struct {
	mu            sync.Mutex
	conversations map[int][]model.Turn
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		conversations: make(map[int][]model.Turn),
	}
}

// Create allocates the next conversation id: max existing id + 1,
// starting at 1 when the store is empty. Ids are never reused downward.
func (r *ConversationRepository) Create() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := 1
	for existing := range r.conversations {
		if existing >= id {
			id = existing + 1
		}
	}
	r.conversations[id] = []model.Turn{}
	return id
}

func (r *ConversationRepository) Append(id int, role, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	turns, ok := r.conversations[id]
	if !ok {
		return ErrNotFound
	}
	r.conversations[id] = append(turns, model.Turn{Role: role, Content: content})
	return nil
}

func (r *ConversationRepository) Get(id int) ([]model.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	turns, ok := r.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *ConversationRepository) List() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.conversations))
	for id := range r.conversations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r *ConversationRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(r.conversations, id)
	return nil
}
