package models

// Identity is the resolved principal of one request: the public handle
// plus its ordered role names. Built from validated token claims or from
// a fresh credential check, never persisted.
type Identity struct {
	Nickname string
	Roles    []string
}

func IdentityFromUser(u User) Identity {
	return Identity{Nickname: u.Nickname, Roles: u.Roles}
}
