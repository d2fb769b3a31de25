package model

// Artist represents a performer or act that can be booked at a venue.
// Artists mirror venues structurally but have no street address and no
// delete operation anywhere in the system.  This struct corresponds to
// a row in the `artists` table.
//
// Fields:
//	ID                 – primary key identifier.
//	Name               – display and search key, unique across artists.
//	City               – home city of the act.
//	State              – state or region code.
//	Phone              – contact phone number.
//	Website            – artist website URL.
//	FacebookLink       – social media link.
//	ImageLink          – promotional image URL.
//	Genres             – genre tags flattened to one delimited string.
//	SeekingVenue       – whether the act is currently looking for venues.
//	SeekingDescription – free text shown when SeekingVenue is set.
type Artist struct {
	ID                 uint64 // artists.id
	Name               string // artists.name
	City               string // artists.city
	State              string // artists.state
	Phone              string // artists.phone
	Website            string // artists.website
	FacebookLink       string // artists.facebook_link
	ImageLink          string // artists.image_link
	Genres             string // artists.genres, comma delimited
	SeekingVenue       bool   // artists.seeking_venue
	SeekingDescription string // artists.seeking_description
}

// GenreList returns the artist's genres split back into a slice.
func (a *Artist) GenreList() []string {
	return SplitGenres(a.Genres)
}
