// Package channels gathers every contact channel declared in an SLA document
// into one deduplicated, ordered registry of notification channels.
package channels

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/sla"
	"nathanbeddoewebdev/slatf/internal/util"
)

// Scope selects which channels an alert policy notifies.
type Scope string

const (
	// ScopeGlobal attaches every channel in the document to every alert.
	ScopeGlobal Scope = "global"
	// ScopePlan attaches only the channels declared by the alert's own plan.
	ScopePlan Scope = "plan"
)

// Scopes lists the accepted Scope values.
var Scopes = []Scope{ScopeGlobal, ScopePlan}

// ParseScope converts a user-supplied scope name. An empty name selects ScopeGlobal.
func ParseScope(s string) (Scope, error) {
	switch util.NormalizeKey(s) {
	case "", string(ScopeGlobal):
		return ScopeGlobal, nil
	case string(ScopePlan):
		return ScopePlan, nil
	default:
		return "", fmt.Errorf("channels: unknown scope %q (valid: global, plan): %w", s, domain.ErrInvalidOption)
	}
}

// addressSchemes are stripped from channel URLs, first match only.
var addressSchemes = []string{"mailto://", "tel://", "https://", "http://"}

// NormalizeAddress removes the scheme prefix from a channel URL.
func NormalizeAddress(url string) string {
	url = strings.TrimSpace(url)
	lower := strings.ToLower(url)
	for _, scheme := range addressSchemes {
		if strings.HasPrefix(lower, scheme) {
			return url[len(scheme):]
		}
	}
	return url
}

// Registry is the ordered set of channels collected from one document.
// It is built fresh by Collect and never shared between compiles.
type Registry struct {
	channels []domain.NotificationChannel
	byPlan   map[string][]int
}

// Collect walks every plan's support-policy contact points in document order
// and deduplicates their channels by (type, address). The first occurrence
// keeps its display name and receives the next 1-based index.
func Collect(doc *sla.Document) *Registry {
	r := &Registry{byPlan: make(map[string][]int, len(doc.Plans))}
	seen := make(map[domain.ChannelKey]int)

	for _, plan := range doc.Plans {
		if plan.SupportPolicy == nil {
			continue
		}
		planSeen := make(map[int]struct{})

		for _, cp := range plan.SupportPolicy.ContactPoints {
			for _, ch := range cp.Channels {
				key := domain.ChannelKey{
					Type:    util.NormalizeKey(ch.Type),
					Address: NormalizeAddress(ch.URL),
				}
				if key.Type == "" || key.Address == "" {
					continue
				}

				idx, exists := seen[key]
				if !exists {
					idx = len(r.channels) + 1
					seen[key] = idx
					r.channels = append(r.channels, domain.NotificationChannel{
						Index:       idx,
						DisplayName: displayName(cp.DisplayName, key.Address),
						Type:        key.Type,
						Address:     key.Address,
					})
				}

				if _, dup := planSeen[idx]; !dup {
					planSeen[idx] = struct{}{}
					r.byPlan[plan.Name] = append(r.byPlan[plan.Name], idx)
				}
			}
		}
	}

	return r
}

func displayName(name, address string) string {
	if strings.TrimSpace(name) == "" {
		return address
	}
	return name
}

// Channels returns the collected channels in index order.
func (r *Registry) Channels() []domain.NotificationChannel {
	return r.channels
}

// For returns the channel indices an alert in plan should notify under scope.
func (r *Registry) For(plan string, scope Scope) []int {
	if scope == ScopePlan {
		return append([]int(nil), r.byPlan[plan]...)
	}

	all := make([]int, len(r.channels))
	for i, ch := range r.channels {
		all[i] = ch.Index
	}
	return all
}
