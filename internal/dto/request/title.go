package request

// TitleRequest is a full title write. Genre holds genre slugs and Category
// a category slug.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty" validate:"dive,required,max=50,slug"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
}

type TitleUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,dive,required,max=50,slug"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=50,slug"`
}
