package publication

import (
	"encoding/json"
	"strings"
)

// Type is the canonical publication category.
type Type string

const (
	TypeBook          Type = "book"
	TypeJournal       Type = "journal"
	TypeConference    Type = "conference"
	TypeWorkshop      Type = "workshop"
	TypeNational      Type = "national"
	TypeDataArtifacts Type = "dataArtifacts"
	TypeEditorship    Type = "editorship"
	TypeOther         Type = "other"
)

// typeOrder lists types from most to least prestigious.
var typeOrder = []Type{
	TypeBook,
	TypeJournal,
	TypeConference,
	TypeWorkshop,
	TypeNational,
	TypeDataArtifacts,
	TypeEditorship,
	TypeOther,
}

var typeLabels = map[Type]string{
	TypeBook:          "Books and PhD thesis",
	TypeJournal:       "Journal",
	TypeConference:    "Conference",
	TypeWorkshop:      "Workshop",
	TypeNational:      "National",
	TypeDataArtifacts: "Data and artifacts",
	TypeEditorship:    "Editorship",
	TypeOther:         "Other",
}

// Types returns every publication type in prestige order.
func Types() []Type {
	out := make([]Type, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// Rank returns the prestige rank of the type (0 is highest).
// Unknown types rank after TypeOther.
func (t Type) Rank() int {
	for i, v := range typeOrder {
		if v == t {
			return i
		}
	}
	return len(typeOrder)
}

// Label returns the human-readable name of the type.
func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return typeLabels[TypeOther]
}

// Quartile is a JCR quartile bucket.
type Quartile string

const (
	Q1 Quartile = "Q1"
	Q2 Quartile = "Q2"
	Q3 Quartile = "Q3"
	Q4 Quartile = "Q4"

	// QuartileUnindexed means the record says the venue is not in the JCR.
	QuartileUnindexed Quartile = "-"
	// QuartileUnknown means the record carries no JCR information.
	QuartileUnknown Quartile = "?"
)

var quartileOrder = []Quartile{Q1, Q2, Q3, Q4}

// ParseQuartile derives a quartile from the raw jcr field.
// An absent field is unknown, a blank one is unindexed, anything else is
// upper-cased and trimmed.
func ParseQuartile(raw string, present bool) Quartile {
	if !present {
		return QuartileUnknown
	}
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return QuartileUnindexed
	}
	return Quartile(v)
}

// Rank orders quartiles Q1 (0) to Q4 (3); everything else ranks last.
func (q Quartile) Rank() int {
	for i, v := range quartileOrder {
		if v == q {
			return i
		}
	}
	return len(quartileOrder)
}

// CoreRank is a CORE conference ranking category.
type CoreRank string

const (
	CoreAStar CoreRank = "A*"
	CoreA     CoreRank = "A"
	CoreB     CoreRank = "B"
	CoreC     CoreRank = "C"

	// CoreUnranked means a lookup happened and found no rank.
	CoreUnranked CoreRank = "-"
	// CoreNone means no lookup was performed (no venue title).
	CoreNone CoreRank = ""
)

var coreOrder = []CoreRank{CoreAStar, CoreA, CoreB, CoreC}

// ParseCoreRank maps a raw ranking-table value to a CoreRank.
// Values outside A*, A, B and C (Unranked, National, TBR, ...) map to
// CoreUnranked.
func ParseCoreRank(raw string) CoreRank {
	v := strings.ToUpper(strings.TrimSpace(raw))
	for _, r := range coreOrder {
		if v == string(r) {
			return r
		}
	}
	return CoreUnranked
}

// Rank orders A* (0) to C (3); unranked and none rank last.
func (r CoreRank) Rank() int {
	for i, v := range coreOrder {
		if v == r {
			return i
		}
	}
	return len(coreOrder)
}

// MarshalJSON encodes CoreNone as null.
func (r CoreRank) MarshalJSON() ([]byte, error) {
	if r == CoreNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts a string or null.
func (r *CoreRank) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = CoreNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = CoreRank(s)
	return nil
}
