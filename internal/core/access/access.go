// Package access computes per-post authorization decisions. All functions are
// pure and stateless; rules are evaluated top to bottom, first match wins.
package access

// Decision is the outcome of an access check. Deny is deliberately distinct
// from a missing post: the boundary collapses both to the same "not found"
// response so a denied caller cannot probe which post ids exist.
type Decision int

const (
	Deny Decision = iota
	Permit
)

// Context carries the facts a post access decision is made from. It is built
// per-request from the post record and the requester's identity and never
// persisted.
type Context struct {
	RequesterID      string
	RequesterIsAdmin bool
	OwnerID          string
	Hidden           bool
}

// Read permits visible posts for any requester, and hidden posts for their
// owner only. Admin status grants no read override.
func Read(c Context) Decision {
	if !c.Hidden {
		return Permit
	}
	if c.RequesterID == c.OwnerID {
		return Permit
	}
	return Deny
}

// Update permits the owner only.
func Update(c Context) Decision {
	if c.RequesterID == c.OwnerID {
		return Permit
	}
	return Deny
}

// Delete permits the owner, and an admin for visible posts. An admin may not
// delete a hidden post they do not own.
func Delete(c Context) Decision {
	if c.RequesterID == c.OwnerID {
		return Permit
	}
	if c.RequesterIsAdmin && !c.Hidden {
		return Permit
	}
	return Deny
}
