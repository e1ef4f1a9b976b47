package trade

import (
	"fmt"
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Policy names accepted in configuration
const (
	PolicyPermissive = "permissive"
	PolicyForward    = "forward"
)

// ErrTransitionNotAllowed is returned when the policy rejects a change
var ErrTransitionNotAllowed = shared.NewDomainError("INVALID_STATE", "Order status transition is not allowed")

// TransitionPolicy is an explicit table of allowed status changes.
// Setting the current status again is always allowed.
type TransitionPolicy struct {
	name  string
	table map[OrderStatus][]OrderStatus
}

// PermissivePolicy allows any enumerated target from any state
func PermissivePolicy() TransitionPolicy {
	table := make(map[OrderStatus][]OrderStatus, len(AllStatuses))
	for _, from := range AllStatuses {
		table[from] = AllStatuses
	}
	return TransitionPolicy{name: PolicyPermissive, table: table}
}

// ForwardPolicy only moves orders forward; completed and canceled are terminal
func ForwardPolicy() TransitionPolicy {
	return TransitionPolicy{
		name: PolicyForward,
		table: map[OrderStatus][]OrderStatus{
			OrderStatusPending: {OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled},
			OrderStatusPaid:    {OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled},
			OrderStatusShipped: {OrderStatusCompleted, OrderStatusCanceled},
		},
	}
}

// PolicyByName resolves a configured policy; empty means permissive
func PolicyByName(name string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPermissive:
		return PermissivePolicy(), nil
	case PolicyForward:
		return ForwardPolicy(), nil
	default:
		return TransitionPolicy{}, fmt.Errorf("unknown order status policy %q", name)
	}
}

// Name returns the policy name
func (p TransitionPolicy) Name() string {
	return p.name
}

// Allows reports whether from → to is permitted
func (p TransitionPolicy) Allows(from, to OrderStatus) bool {
	if !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, target := range p.table[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Targets lists statuses reachable from the given one
func (p TransitionPolicy) Targets(from OrderStatus) []OrderStatus {
	targets := make([]OrderStatus, 0, len(p.table[from]))
	for _, t := range p.table[from] {
		if t != from {
			targets = append(targets, t)
		}
	}
	return targets
}
