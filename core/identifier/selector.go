package identifier

import (
	"fmt"
	"strconv"

	"github.com/siherrmann/starcalc/model"
)

// rule formats a display id from one identifier scheme, ok is false if the
// scheme is not set on the star.
type rule struct {
	name   string
	format func(ids model.IdentifierSet) (id string, ok bool)
}

// rules in priority order, the first match wins. The last rule always matches.
var rules = []rule{
	{"proper", func(ids model.IdentifierSet) (string, bool) { return text(ids.Proper) }},
	{"gl", func(ids model.IdentifierSet) (string, bool) { return text(ids.Gl) }},
	{"bf", func(ids model.IdentifierSet) (string, bool) {
		if ids.Flam == nil || ids.Bayer == nil || ids.Con == nil {
			return "", false
		}
		return fmt.Sprintf("%d %s %s", *ids.Flam, *ids.Bayer, *ids.Con), true
	}},
	{"tyc", func(ids model.IdentifierSet) (string, bool) { return prefixed("tyc", ids.Tyc) }},
	{"hyg", func(ids model.IdentifierSet) (string, bool) { return prefixedInt("hyg", ids.Hyg) }},
	{"hr", func(ids model.IdentifierSet) (string, bool) { return prefixedInt("hr", ids.HR) }},
	{"hip", func(ids model.IdentifierSet) (string, bool) { return prefixedInt("hip", ids.Hip) }},
	{"hd", func(ids model.IdentifierSet) (string, bool) { return prefixedInt("hd", ids.HD) }},
	{"gaia", func(ids model.IdentifierSet) (string, bool) { return prefixedInt("gaia", ids.Gaia) }},
	{"athyg", func(ids model.IdentifierSet) (string, bool) { return "athyg: " + strconv.FormatInt(ids.ID, 10), true }},
}

// SelectDisplayID picks the human facing label of a star.
// Names come first, then composite designations, then catalogue numbers,
// and the internal id as the final fallback.
func SelectDisplayID(ids model.IdentifierSet) string {
	for _, r := range rules {
		if id, ok := r.format(ids); ok {
			return id
		}
	}
	// unreachable, the athyg rule always matches
	return ""
}

// Rules returns the identifier schemes in priority order
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

func text(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}

func prefixed(prefix string, value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return prefix + ": " + *value, true
}

func prefixedInt(prefix string, value *int64) (string, bool) {
	if value == nil {
		return "", false
	}
	return prefix + ": " + strconv.FormatInt(*value, 10), true
}
