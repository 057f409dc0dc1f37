package domain

// Snapshot is the full exportable content set. Conversations are not part of it.
type Snapshot struct {
	Groups     []*Group
	Members    []*Member
	Songs      []*Song
	Formations []*Formation
	Setlists   []*Setlist
}
