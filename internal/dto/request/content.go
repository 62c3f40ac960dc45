package request

type CreateNewsRequest struct {
	TitleKG   string `json:"title_kg" validate:"required,max=255"`
	TitleRU   string `json:"title_ru" validate:"required,max=255"`
	ContentKG string `json:"content_kg"`
	ContentRU string `json:"content_ru"`
	Image     string `json:"image"`
	Published *bool  `json:"published,omitempty"`
}

type UpdateNewsRequest struct {
	TitleKG   *string `json:"title_kg,omitempty" validate:"omitempty,min=1,max=255"`
	TitleRU   *string `json:"title_ru,omitempty" validate:"omitempty,min=1,max=255"`
	ContentKG *string `json:"content_kg,omitempty"`
	ContentRU *string `json:"content_ru,omitempty"`
	Image     *string `json:"image,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

type CreateGalleryRequest struct {
	ImageURL  string `json:"image_url" validate:"required"`
	CaptionKG string `json:"caption_kg" validate:"max=255"`
	CaptionRU string `json:"caption_ru" validate:"max=255"`
}

type UpdateGalleryRequest struct {
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,min=1"`
	CaptionKG *string `json:"caption_kg,omitempty" validate:"omitempty,max=255"`
	CaptionRU *string `json:"caption_ru,omitempty" validate:"omitempty,max=255"`
}
