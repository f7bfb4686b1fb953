package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	PosterURL   string   `json:"poster_url" validate:"required,url"`
	ReleaseDate string   `json:"release_date" validate:"required,datetime=2006-01-02"`
	Featured    bool     `json:"featured"`
	Actors      []string `json:"actors" validate:"required,min=1,dive,min=1"`
}
