package domain

// CanMutate reports whether the actor may update or delete a resource owned
// by ownerID. IDs are compared as canonical hex strings.
func CanMutate(actorID, ownerID, actorRole string) bool {
	if actorRole == RoleAdmin {
		return true
	}
	return actorID != "" && actorID == ownerID
}

// CanWrite reports whether a role may create content at all.
func CanWrite(role string) bool {
	return role != "" && role != RoleBanned
}
