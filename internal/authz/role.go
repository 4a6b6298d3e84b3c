package authz

import (
	"encoding/json"
	"fmt"
)

// Role is a board participation role. Lower values carry more capability,
// so the stored integer is the only owner marker and row order never
// matters.
type Role int16

const (
	RoleOwner  Role = 1
	RoleWriter Role = 2
	RoleReader Role = 3
)

var roleNames = map[Role]string{
	RoleOwner:  "owner",
	RoleWriter: "writer",
	RoleReader: "reader",
}

// ParseRole maps a role name to its Role value.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// HasAtLeast reports whether r grants at least the capability of
// threshold. The zero Role (no membership) grants nothing.
func (r Role) HasAtLeast(threshold Role) bool {
	return r.Valid() && r <= threshold
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int16(r))
}

func (r Role) MarshalJSON() ([]byte, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int16(r))
	}
	return json.Marshal(name)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseRole(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
