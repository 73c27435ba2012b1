package article

// ContribKind identifies which contributor sub-shape was recognized in the source.
type ContribKind string

const (
	// ContribPerson is a personal name with given-names and/or surname.
	ContribPerson ContribKind = "person"
	// ContribGroup is a collaborative or institutional author (collab element).
	// The collective name is stored in Surname.
	ContribGroup ContribKind = "group"
	// ContribUnknown is a contributor whose shape was not recognized.
	// Such rows keep their position so author numbering stays dense.
	ContribUnknown ContribKind = "unknown"
)

// Author represents one contributor of an article.
type Author struct {
	GivenNames string      `json:"given_names,omitempty"` // may be absent
	Surname    string      `json:"surname,omitempty"`     // collective name for group contributors
	Number     int         `json:"author_number"`         // 1-based position in document order
	Kind       ContribKind `json:"kind"`
}

// DisplayName formats an author as "Given Surname", falling back to whichever
// part is present.
func (a Author) DisplayName() string {
	if a.GivenNames != "" && a.Surname != "" {
		return a.GivenNames + " " + a.Surname
	}
	if a.Surname != "" {
		return a.Surname
	}
	return a.GivenNames
}
