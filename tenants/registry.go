// Package tenants tracks the organisations a credential grants access to and
// which one is currently active for a session.
package tenants

import "fmt"

// NotAuthorizedError is returned when a tenant switch names an id that is not
// part of the current grant set, e.g. a stale or forged form field.
type NotAuthorizedError struct {
	TenantID string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("tenant %q is not in the authorized tenant set", e.TenantID)
}

// Registry holds the ordered tenant set for one session together with the
// active-tenant pointer. The order is server-defined and preserved; lookups go
// through an id-keyed index. Exactly one tenant is active at a time, or none
// when the set is empty.
//
// A Registry is not safe for concurrent use; the session guard serializes
// access per session.
type Registry struct {
	ordered  []Tenant
	byID     map[string]int
	activeID string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// FromSession rebuilds a registry from persisted session state. An activeID
// that is no longer part of the set is discarded and the first tenant becomes
// active again.
func FromSession(list []Tenant, activeID string) *Registry {
	r := NewRegistry()
	r.Replace(list)
	if activeID != "" {
		if _, ok := r.byID[activeID]; ok {
			r.activeID = activeID
		}
	}
	return r
}

// Replace installs a freshly fetched tenant list. The first element becomes
// the active tenant whenever no active tenant was previously selected or the
// previously active tenant is no longer present. An empty list clears the
// active pointer.
func (r *Registry) Replace(list []Tenant) {
	r.ordered = make([]Tenant, len(list))
	copy(r.ordered, list)

	r.byID = make(map[string]int, len(list))
	for i, t := range list {
		r.byID[t.TenantID] = i
	}

	if len(r.ordered) == 0 {
		r.activeID = ""
		return
	}
	if _, stillPresent := r.byID[r.activeID]; r.activeID == "" || !stillPresent {
		r.activeID = r.ordered[0].TenantID
	}
}

// SetActive switches the active tenant. Fails with NotAuthorizedError when the
// id is not in the current set; the previously active tenant is left unchanged
// on failure.
func (r *Registry) SetActive(tenantID string) error {
	if _, ok := r.byID[tenantID]; !ok {
		return &NotAuthorizedError{TenantID: tenantID}
	}
	r.activeID = tenantID
	return nil
}

// Active returns the currently active tenant. The boolean is false when the
// tenant set is empty; callers must surface this as a degraded "no org
// context" state rather than crash.
func (r *Registry) Active() (Tenant, bool) {
	idx, ok := r.byID[r.activeID]
	if !ok {
		return Tenant{}, false
	}
	return r.ordered[idx], true
}

// All returns the tenant set in server order.
func (r *Registry) All() []Tenant {
	out := make([]Tenant, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of authorized tenants.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Clear empties the tenant set and the active pointer, used on full
// disconnect when zero tenants remain.
func (r *Registry) Clear() {
	r.ordered = nil
	r.byID = make(map[string]int)
	r.activeID = ""
}
