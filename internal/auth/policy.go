package auth

import (
	"github.com/homeflix/homeflix/internal/models"
)

// Action is the kind of operation a request performs on a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// IsRead reports whether the action only reads state
func (a Action) IsRead() bool {
	return a == ActionList || a == ActionRetrieve
}

// Resource identifies the target of a request for policy evaluation.
// OwnerID is empty for collection-level actions.
type Resource struct {
	Kind    string
	OwnerID string
}

// Rule is a named policy predicate. Rules only grant access; denial is the
// absence of any matching rule.
type Rule struct {
	Name   string
	Allows func(user *models.User, action Action, res Resource) bool
}

// Evaluator runs an ordered list of rules, first allow wins.
//
// Anonymous requests fail with ErrUnauthorized before any rule runs;
// authenticated requests that no rule allows fail with ErrForbidden. The
// two must stay distinct: missing credentials and insufficient privilege
// are different failures.
type Evaluator struct {
	rules []Rule
}

func NewEvaluator(rules ...Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

func (e *Evaluator) Evaluate(user *models.User, action Action, res Resource) error {
	if user == nil {
		return models.ErrUnauthorized
	}
	if !user.IsActive {
		return models.ErrUnauthorized
	}

	for _, rule := range e.rules {
		if rule.Allows(user, action, res) {
			return nil
		}
	}

	return models.ErrForbidden
}

// CatalogRules is the policy for movies, tags, genres and listings:
// any authenticated user may read, only superusers may write.
func CatalogRules() []Rule {
	return []Rule{
		{
			Name: "catalog-read",
			Allows: func(user *models.User, action Action, res Resource) bool {
				return action.IsRead()
			},
		},
		{
			Name: "catalog-admin-write",
			Allows: func(user *models.User, action Action, res Resource) bool {
				return user.IsSuperuser
			},
		},
	}
}

// ProfileRules is the policy for user profiles: every action requires the
// requester to own the resource. Collection-level actions (list, create)
// carry no owner and are implicitly scoped to the requester.
func ProfileRules() []Rule {
	return []Rule{
		{
			Name: "profile-owner",
			Allows: func(user *models.User, action Action, res Resource) bool {
				if res.OwnerID == "" {
					return true
				}
				return res.OwnerID == user.ID
			},
		},
	}
}
