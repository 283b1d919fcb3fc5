package role

// Role is the single effective role used for authorization decisions.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// Source names where the effective role came from.
type Source string

const (
	SourceMetadata Source = "metadata"
	SourceProfile  Source = "profile"
	SourceDefault  Source = "default"
)

// Parse validates a raw role string.
func Parse(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Resolution is the outcome of resolving the two role sources.
type Resolution struct {
	Role   Role
	Source Source
}

// Resolve picks the effective role from the two possible sources. The role
// embedded in the token metadata wins when present; the stored profile role is
// the fallback; EMPLOYEE is the default when neither source has a valid value.
// Resolve never fails: a broken profile fetch shows up here as an empty
// profileRole and the session continues degraded.
func Resolve(metadataRole, profileRole string) Resolution {
	if r, ok := Parse(metadataRole); ok {
		return Resolution{Role: r, Source: SourceMetadata}
	}
	if r, ok := Parse(profileRole); ok {
		return Resolution{Role: r, Source: SourceProfile}
	}
	return Resolution{Role: RoleEmployee, Source: SourceDefault}
}

// Capabilities are the boolean permission checks derived from a resolution.
type Capabilities struct {
	IsEmployee bool
	IsManager  bool
	IsAdmin    bool
}

// Capabilities derives the permission booleans. ADMIN implies MANAGER.
// IsEmployee reports whether any source actually provided a role, as opposed
// to falling through to the default.
func (r Resolution) Capabilities() Capabilities {
	return Capabilities{
		IsEmployee: r.Source != SourceDefault,
		IsManager:  r.Role == RoleManager || r.Role == RoleAdmin,
		IsAdmin:    r.Role == RoleAdmin,
	}
}

// HasManagerCapability is the service-layer check for decision permissions.
func HasManagerCapability(raw string) bool {
	r, ok := Parse(raw)
	return ok && (r == RoleManager || r == RoleAdmin)
}
