package models

// HeartFilter selects tracks by the heart tag of the track itself, its album
// or its artist.
type HeartFilter string

const (
	HeartAll            HeartFilter = "all"
	HeartAllHearts      HeartFilter = "all-hearts"
	HeartOnlySuper      HeartFilter = "only-super-heart"
	HeartAllExceptSuper HeartFilter = "all-except-super-heart"
	HeartOnlySimple     HeartFilter = "only-simple-heart"
	HeartOnlyWithout    HeartFilter = "only-without-heart"
)

func (h HeartFilter) Valid() bool {
	switch h {
	case HeartAll, HeartAllHearts, HeartOnlySuper, HeartAllExceptSuper,
		HeartOnlySimple, HeartOnlyWithout:
		return true
	}
	return false
}

// Matches applies the heart mode to a stored heart tag.
func (h HeartFilter) Matches(heart FavoriteLevel) bool {
	switch h {
	case HeartAllHearts:
		return heart == FavoriteLiked || heart == FavoriteSuperliked
	case HeartOnlySuper:
		return heart == FavoriteSuperliked
	case HeartAllExceptSuper:
		return heart == FavoriteNone || heart == FavoriteLiked
	case HeartOnlySimple:
		return heart == FavoriteLiked
	case HeartOnlyWithout:
		return heart == FavoriteNone
	}
	return true // HeartAll and anything unrecognized
}

// SortMode orders a materialized track list.
type SortMode string

const (
	SortNone       SortMode = "none"       // newest first by date added
	SortAscending  SortMode = "ascending"  // popularity, least popular first
	SortDescending SortMode = "descending" // popularity, most popular first
)

func (s SortMode) Valid() bool {
	switch s {
	case SortNone, SortAscending, SortDescending:
		return true
	}
	return false
}

// Mood rating scale bounds.
const (
	MoodMin = 0
	MoodMax = 4
)

// Criteria is a complete filter over the local library. A zero text filter
// matches everything; heart modes default to HeartAll; mood bounds default to
// the full scale.
type Criteria struct {
	Title  string `json:"title"`
	Album  string `json:"album"`
	Author string `json:"author"`

	TitleHeart  HeartFilter `json:"title_heart"`
	AlbumHeart  HeartFilter `json:"album_heart"`
	ArtistHeart HeartFilter `json:"artist_heart"`

	MinEnergetic int `json:"min_energetic"`
	MaxEnergetic int `json:"max_energetic"`
	MinJoyful    int `json:"min_joyful"`
	MaxJoyful    int `json:"max_joyful"`
	MinMusical   int `json:"min_musical"`
	MaxMusical   int `json:"max_musical"`

	Sort SortMode `json:"sort"`
}

// DefaultCriteria matches the whole library.
func DefaultCriteria() Criteria {
	return Criteria{
		TitleHeart:   HeartAll,
		AlbumHeart:   HeartAll,
		ArtistHeart:  HeartAll,
		MinEnergetic: MoodMin,
		MaxEnergetic: MoodMax,
		MinJoyful:    MoodMin,
		MaxJoyful:    MoodMax,
		MinMusical:   MoodMin,
		MaxMusical:   MoodMax,
		Sort:         SortNone,
	}
}

// MoodBoundsAtDefault reports whether every mood bound still spans the full
// scale. When true, mood predicates are skipped entirely, so un-rated tracks
// are not excluded.
func (c Criteria) MoodBoundsAtDefault() bool {
	return c.MinEnergetic == MoodMin && c.MaxEnergetic == MoodMax &&
		c.MinJoyful == MoodMin && c.MaxJoyful == MoodMax &&
		c.MinMusical == MoodMin && c.MaxMusical == MoodMax
}

// CriteriaPatch merges into stored criteria key by key: set fields win, nil
// fields keep the stored value.
type CriteriaPatch struct {
	Title  *string `json:"title,omitempty"`
	Album  *string `json:"album,omitempty"`
	Author *string `json:"author,omitempty"`

	TitleHeart  *HeartFilter `json:"title_heart,omitempty"`
	AlbumHeart  *HeartFilter `json:"album_heart,omitempty"`
	ArtistHeart *HeartFilter `json:"artist_heart,omitempty"`

	MinEnergetic *int `json:"min_energetic,omitempty"`
	MaxEnergetic *int `json:"max_energetic,omitempty"`
	MinJoyful    *int `json:"min_joyful,omitempty"`
	MaxJoyful    *int `json:"max_joyful,omitempty"`
	MinMusical   *int `json:"min_musical,omitempty"`
	MaxMusical   *int `json:"max_musical,omitempty"`

	Sort *SortMode `json:"sort,omitempty"`
}

func (c *Criteria) Apply(p CriteriaPatch) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Album != nil {
		c.Album = *p.Album
	}
	if p.Author != nil {
		c.Author = *p.Author
	}
	if p.TitleHeart != nil {
		c.TitleHeart = *p.TitleHeart
	}
	if p.AlbumHeart != nil {
		c.AlbumHeart = *p.AlbumHeart
	}
	if p.ArtistHeart != nil {
		c.ArtistHeart = *p.ArtistHeart
	}
	if p.MinEnergetic != nil {
		c.MinEnergetic = *p.MinEnergetic
	}
	if p.MaxEnergetic != nil {
		c.MaxEnergetic = *p.MaxEnergetic
	}
	if p.MinJoyful != nil {
		c.MinJoyful = *p.MinJoyful
	}
	if p.MaxJoyful != nil {
		c.MaxJoyful = *p.MaxJoyful
	}
	if p.MinMusical != nil {
		c.MinMusical = *p.MinMusical
	}
	if p.MaxMusical != nil {
		c.MaxMusical = *p.MaxMusical
	}
	if p.Sort != nil {
		c.Sort = *p.Sort
	}
}
