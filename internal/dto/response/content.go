package response

import (
	"time"

	"univer-cinema/internal/data/entity"
)

type NewsResponse struct {
	ID        string    `json:"id"`
	TitleKG   string    `json:"title_kg"`
	TitleRU   string    `json:"title_ru"`
	ContentKG string    `json:"content_kg"`
	ContentRU string    `json:"content_ru"`
	Image     string    `json:"image"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewsToResponse(n *entity.News) NewsResponse {
	return NewsResponse{
		ID:        n.ID.String(),
		TitleKG:   n.TitleKG,
		TitleRU:   n.TitleRU,
		ContentKG: n.ContentKG,
		ContentRU: n.ContentRU,
		Image:     n.Image,
		Published: n.Published,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type GalleryResponse struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	CaptionKG string    `json:"caption_kg"`
	CaptionRU string    `json:"caption_ru"`
	CreatedAt time.Time `json:"created_at"`
}

func GalleryToResponse(g *entity.Gallery) GalleryResponse {
	return GalleryResponse{
		ID:        g.ID.String(),
		ImageURL:  g.ImageURL,
		CaptionKG: g.CaptionKG,
		CaptionRU: g.CaptionRU,
		CreatedAt: g.CreatedAt,
	}
}
