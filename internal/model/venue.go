package model

// Venue represents a physical location that hosts performances.
// A venue can be referenced by any number of shows; the reference is
// non-owning, so dependent shows must be removed before the venue row
// itself can go away.  This struct corresponds to a row in the
// `venues` table.
//
// Fields:
//	ID                 – primary key identifier.
//	Name               – display and search key, unique across venues.
//	City               – city the venue is located in.
//	State              – state or region code.
//	Address            – street address.
//	Phone              – contact phone number.
//	Website            – venue website URL.
//	FacebookLink       – social media link.
//	ImageLink          – promotional image URL.
//	Genres             – genre tags flattened to one delimited string.
//	SeekingTalent      – whether the venue is currently looking for acts.
//	SeekingDescription – free text shown when SeekingTalent is set.
type Venue struct {
	ID                 uint64 // venues.id
	Name               string // venues.name
	City               string // venues.city
	State              string // venues.state
	Address            string // venues.address
	Phone              string // venues.phone
	Website            string // venues.website
	FacebookLink       string // venues.facebook_link
	ImageLink          string // venues.image_link
	Genres             string // venues.genres, comma delimited
	SeekingTalent      bool   // venues.seeking_talent
	SeekingDescription string // venues.seeking_description
}

// GenreList returns the venue's genres split back into a slice.
func (v *Venue) GenreList() []string {
	return SplitGenres(v.Genres)
}
