package domain

// EnforceRequest asks whether the effective role may perform an action on a
// resource. Roles come from the resolver, not from a per-company table: the
// role set is a fixed three-level hierarchy.
type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
