package transport

import "strings"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTabRequest struct {
	Title      string `json:"title"      validate:"required,min=2"`
	Artist     string `json:"artist"     validate:"required,min=2"`
	Difficulty string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Genre      string `json:"genre"      validate:"required,oneof=rock metal pop blues jazz folk country"`
	TabContent string `json:"tabContent" validate:"required,min=10"`
	Capo       *int   `json:"capo"       validate:"omitempty,gte=0,lte=12"`
	Tuning     string `json:"tuning"`
}

func (r *CreateTabRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Artist = strings.TrimSpace(r.Artist)
	r.TabContent = strings.TrimSpace(r.TabContent)
	r.Tuning = strings.TrimSpace(r.Tuning)
}

// PatchTabRequest carries only the fields present in the payload; nil means
// "keep the stored value".
type PatchTabRequest struct {
	Title      *string `json:"title"      validate:"omitempty,min=2"`
	Artist     *string `json:"artist"     validate:"omitempty,min=2"`
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Genre      *string `json:"genre"      validate:"omitempty,oneof=rock metal pop blues jazz folk country"`
	TabContent *string `json:"tabContent" validate:"omitempty,min=10"`
	Capo       *int    `json:"capo"       validate:"omitempty,gte=0,lte=12"`
	Tuning     *string `json:"tuning"`
}

func (r *PatchTabRequest) Normalize() {
	trim(r.Title)
	trim(r.Artist)
	trim(r.TabContent)
	trim(r.Tuning)
}

type CreateSongRequest struct {
	Title    string `json:"title"  validate:"required,min=2"`
	Artist   string `json:"artist" validate:"required,min=2"`
	Album    string `json:"album"`
	Year     *int   `json:"year"   validate:"omitempty,gte=1900,notfuture"`
	Duration string `json:"duration"`
	TabID    *uint  `json:"tabId"`
}

func (r *CreateSongRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Artist = strings.TrimSpace(r.Artist)
	r.Album = strings.TrimSpace(r.Album)
}

type PatchSongRequest struct {
	Title    *string `json:"title"  validate:"omitempty,min=2"`
	Artist   *string `json:"artist" validate:"omitempty,min=2"`
	Album    *string `json:"album"`
	Year     *int    `json:"year"   validate:"omitempty,gte=1900,notfuture"`
	Duration *string `json:"duration"`
	TabID    *uint   `json:"tabId"`
}

func (r *PatchSongRequest) Normalize() {
	trim(r.Title)
	trim(r.Artist)
	trim(r.Album)
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
