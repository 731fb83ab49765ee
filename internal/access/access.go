// Package access decides whether an actor may read or write a resource scoped to a
// workspace. Every resource handler goes through this package instead of re-deriving
// the decision from the workspace's owner, members and privacy flag.
package access

import (
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type Options struct {
	// RequireAdmin restricts the operation to the owner and admin members.
	RequireAdmin bool
	// Public marks an operation that a private workspace still exposes to
	// non-members, e.g. reading a document flagged public.
	Public bool
}

// Authorizer is consumed by services that gate workspace-scoped resources.
type Authorizer interface {
	CanAccess(workspace *models.Workspace, actorID uint, opts Options) bool
	Check(workspace *models.Workspace, actorID uint, opts Options) error
	CanModifyMember(workspace *models.Workspace, targetUserID uint) error
}

type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

func (p *Policy) CanAccess(workspace *models.Workspace, actorID uint, opts Options) bool {
	if workspace == nil {
		return false
	}
	if workspace.IsOwner(actorID) {
		return true
	}

	member := workspace.Member(actorID)
	if member == nil {
		if opts.RequireAdmin {
			return false
		}
		return !workspace.Settings.IsPrivate || opts.Public
	}

	if opts.RequireAdmin {
		return member.Role == enums.ROLE_ADMIN
	}
	return true
}

// Check is CanAccess as an error: ErrWorkspaceNotFound for a nil workspace, ErrAdminRequired
// or ErrForbidden on denial.
func (p *Policy) Check(workspace *models.Workspace, actorID uint, opts Options) error {
	if workspace == nil {
		return errs.ErrWorkspaceNotFound
	}
	if p.CanAccess(workspace, actorID, opts) {
		return nil
	}
	if opts.RequireAdmin {
		return errs.ErrAdminRequired
	}
	return errs.ErrForbidden
}

// CanModifyMember rejects role changes and removals that target the owner.
func (p *Policy) CanModifyMember(workspace *models.Workspace, targetUserID uint) error {
	if workspace == nil {
		return errs.ErrWorkspaceNotFound
	}
	if workspace.IsOwner(targetUserID) {
		return errs.ErrCannotModifyOwner
	}
	return nil
}

// IsMember reports whether userID is the owner or has a member entry.
func IsMember(workspace *models.Workspace, userID uint) bool {
	return workspace.IsOwner(userID) || workspace.Member(userID) != nil
}
