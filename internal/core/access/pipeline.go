// Package access implements request authorization as an ordered pipeline of
// stages. Each stage either lets the request continue, possibly enriching it,
// or stops it with a *domain.Error.
//
//	Start --no token--> 401
//	Start --token--> Verify --fail--> 403
//	                 Verify --ok--> CheckRole --fail--> 403
//	                                CheckRole --ok--> handler
package access

import (
	"strings"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

// Request is the per-request state the stages read and enrich.
type Request struct {
	// Token is the raw bearer credential, empty when the carrier was absent.
	Token string
	// ResourceID is the path-supplied id of the resource being acted on.
	ResourceID string
	// Identity is set by Authenticate, or pre-populated by an earlier pipeline.
	Identity *domain.Identity
}

// Stage inspects r and returns nil to continue or an error to short-circuit.
type Stage func(r *Request) error

// Pipeline runs its stages in order and stops at the first error.
type Pipeline []Stage

// Chain builds a Pipeline from stages.
func Chain(stages ...Stage) Pipeline {
	return Pipeline(stages)
}

// Run dispatches r through every stage.
func (p Pipeline) Run(r *Request) error {
	for _, stage := range p {
		if err := stage(r); err != nil {
			return err
		}
	}
	return nil
}

// Authenticate verifies r.Token and attaches the decoded identity.
func Authenticate(verifier ports.TokenVerifier) Stage {
	return func(r *Request) error {
		if r.Token == "" {
			return domain.ErrTokenMissing
		}
		identity, err := verifier.Verify(r.Token)
		if err != nil {
			return err
		}
		r.Identity = identity
		return nil
	}
}

// RequireRoles allows the request when the identity holds any of roles.
func RequireRoles(roles ...domain.Role) Stage {
	return func(r *Request) error {
		if r.Identity == nil || len(r.Identity.Roles) == 0 {
			return domain.ErrMissingIdentity
		}
		if !r.Identity.HasAnyRole(roles...) {
			return domain.ErrInsufficientPermissions
		}
		return nil
	}
}

// RequireRolesOrSelf allows the request when the identity owns the resource,
// falling back to RequireRoles otherwise. Ids compare case-insensitively.
func RequireRolesOrSelf(roles ...domain.Role) Stage {
	byRole := RequireRoles(roles...)
	return func(r *Request) error {
		if r.Identity != nil && r.ResourceID != "" && strings.EqualFold(r.Identity.ID, r.ResourceID) {
			return nil
		}
		return byRole(r)
	}
}
