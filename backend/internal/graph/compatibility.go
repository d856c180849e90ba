package graph

import (
	"fmt"
	"strings"
)

// sexRelation is the same/different-sex constraint a compatibility rule imposes
type sexRelation int

const (
	sexAny sexRelation = iota
	sexSame
	sexDifferent
)

// compatibilityRule says which candidate orientations fit a requester
// orientation and what sex relation the pair must satisfy. Both directions of
// each asymmetric pairing are listed explicitly; any combination not listed is
// incompatible.
type compatibilityRule struct {
	requester string
	candidate string
	relation  sexRelation
}

var compatibilityRules = []compatibilityRule{
	{"straight", "straight", sexDifferent},
	{"straight", "bisexual", sexDifferent},
	{"gay", "gay", sexSame},
	{"gay", "bisexual", sexSame},
	{"bisexual", "gay", sexSame},
	{"bisexual", "straight", sexDifferent},
	{"bisexual", "bisexual", sexAny},
}

// compatibilityClause renders the rule table into the WHERE fragment of the
// recommendation query. Orientation values are the fixed enum, never input.
func compatibilityClause() string {
	parts := make([]string, 0, len(compatibilityRules))
	for _, rule := range compatibilityRules {
		cond := fmt.Sprintf("(me.orientation = '%s' AND candidate.orientation = '%s'", rule.requester, rule.candidate)
		switch rule.relation {
		case sexSame:
			cond += " AND me.sex = candidate.sex"
		case sexDifferent:
			cond += " AND me.sex <> candidate.sex"
		}
		cond += ")"
		parts = append(parts, cond)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}
