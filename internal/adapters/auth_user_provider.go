// Package adapters provides implementations of the port interfaces
// other domains define. This follows the anti-corruption layer
// pattern: each adapter translates one provider service into one
// consumer-driven interface, so bounded contexts never import each
// other's internals.
package adapters

import (
	"context"

	authsvc "bootcamp_directory_backend/internal/auth/service"
	"bootcamp_directory_backend/internal/courses/ports"

	"github.com/google/uuid"
)

// AuthUserProvider implements courses/ports.UserProvider using the
// auth service.
type AuthUserProvider struct {
	svc *authsvc.Service
}

func NewAuthUserProvider(svc *authsvc.Service) *AuthUserProvider {
	return &AuthUserProvider{svc: svc}
}

var _ ports.UserProvider = (*AuthUserProvider)(nil)

func (a *AuthUserProvider) GetUserByID(ctx context.Context, userID uuid.UUID) (ports.UserInfo, error) {
	user, err := a.svc.GetUser(ctx, userID)
	if err != nil {
		return ports.UserInfo{}, err
	}
	return ports.UserInfo{
		ID:                 user.ID,
		Role:               user.Role,
		CourseCreatedCount: user.CourseCreatedCount,
		CourseCreatedLimit: user.CourseCreatedLimit,
	}, nil
}
