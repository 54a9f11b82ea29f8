/*
Package session implements the gateway's persistent session state: the user
record tied to a session token, the key/value stores that hold it, and the
cookie pair read by the route guard.
*/
package session

import "encoding/json"

// Record is the user record attached to a session token. The remote session
// API owns its shape; besides the role fields the gateway cares about, any
// other fields are carried through opaquely so that rewriting the record
// never drops data the gateway does not understand.
type Record struct {
	// Roles is the ordered sequence of role codes assigned to the user.
	Roles []string

	// ActiveRole is the role currently governing the session. Empty means
	// the user has not selected a role yet.
	ActiveRole string

	// extra holds every field of the serialized record this gateway does
	// not model itself.
	extra map[string]json.RawMessage
}

// MarshalJSON serializes the record, merging the modeled fields back into
// the opaque ones. ActiveRole is omitted entirely when unset, matching the
// remote API's representation of a session without a chosen role.
func (rec Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(rec.extra)+2)
	for k, v := range rec.extra {
		out[k] = v
	}

	roles, err := json.Marshal(rec.Roles)
	if err != nil {
		return nil, err
	}
	out["roles"] = roles

	if rec.ActiveRole != "" {
		active, err := json.Marshal(rec.ActiveRole)
		if err != nil {
			return nil, err
		}
		out["activeRole"] = active
	} else {
		delete(out, "activeRole")
	}

	return json.Marshal(out)
}

// UnmarshalJSON deserializes the record, lifting the modeled fields out and
// keeping everything else opaque.
func (rec *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["roles"]; ok {
		if err := json.Unmarshal(v, &rec.Roles); err != nil {
			return err
		}
		delete(raw, "roles")
	}

	if v, ok := raw["activeRole"]; ok {
		if err := json.Unmarshal(v, &rec.ActiveRole); err != nil {
			return err
		}
		delete(raw, "activeRole")
	}

	rec.extra = raw

	return nil
}
