package entity

type News struct {
	BaseNoDelete
	TitleKG   string `db:"title_kg"`
	TitleRU   string `db:"title_ru"`
	ContentKG string `db:"content_kg"`
	ContentRU string `db:"content_ru"`
	Image     string `db:"image"`
	Published bool   `db:"published"`
}

type Gallery struct {
	BaseSimple
	ImageURL  string `db:"image_url"`
	CaptionKG string `db:"caption_kg"`
	CaptionRU string `db:"caption_ru"`
}
