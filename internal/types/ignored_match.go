package types

// IgnoredMatch is the payload shape shared with the backend API for a
// single ignored secret occurrence. Match holds the hashed match value,
// Name an optional human-readable label.
type IgnoredMatch struct {
	Name  string
	Match string
}

// ToDict serializes the match into its mapping form for the wire and for
// configuration files.
func (m IgnoredMatch) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"name":  m.Name,
		"match": m.Match,
	}
}

// IgnoredMatchFromDict builds an IgnoredMatch from its mapping form.
// The match value is required; the name is optional.
func IgnoredMatchFromDict(data map[string]interface{}) (IgnoredMatch, bool) {
	match, ok := data["match"].(string)
	if !ok || match == "" {
		return IgnoredMatch{}, false
	}
	name, _ := data["name"].(string)
	return IgnoredMatch{Name: name, Match: match}, true
}
