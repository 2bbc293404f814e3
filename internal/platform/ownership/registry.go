package ownership

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type DefaultRegistry struct {
	checkers map[string]Checker
	mu       sync.RWMutex
}

func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		checkers: make(map[string]Checker),
	}
}

func (r *DefaultRegistry) RegisterChecker(resourceType string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[resourceType] = checker
}

func (r *DefaultRegistry) CheckOwnership(ctx context.Context, userID uuid.UUID, resourceType string, resourceID uuid.UUID) (bool, error) {
	r.mu.RLock()
	checker, exists := r.checkers[resourceType]
	r.mu.RUnlock()

	if !exists {
		return false, fmt.Errorf("no ownership checker registered for resource type: %s", resourceType)
	}
	if userID == uuid.Nil || resourceID == uuid.Nil {
		return false, nil
	}

	return checker.CheckOwnership(ctx, userID, resourceID)
}
