package usecase

import (
	"context"
	"time"

	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/pkg/deeplink"
)

// PageOptions carries the fixed contact channels shown on the page
type PageOptions struct {
	ContactEmail   string
	PhoneNumber    string
	WhatsAppNumber string
	SiteURL        string
}

type pageUsecase struct {
	content *domain.SiteContent
	links   domain.ContactLinks
	siteURL string
	now     func() time.Time
}

func NewPageUsecase(content *domain.SiteContent, opts PageOptions) domain.PageUsecase {
	return &pageUsecase{
		content: content,
		links: domain.ContactLinks{
			Email:    opts.ContactEmail,
			Mailto:   "mailto:" + opts.ContactEmail,
			Tel:      deeplink.Tel(opts.PhoneNumber),
			WhatsApp: deeplink.WhatsApp(opts.WhatsAppNumber),
		},
		siteURL: opts.SiteURL,
		now:     time.Now,
	}
}

func (uc *pageUsecase) Content() *domain.SiteContent {
	return uc.content
}

// Render builds the view for one page load. The content table is shared and
// must not be modified by templates.
func (uc *pageUsecase) Render(ctx context.Context, state domain.ContactState) *domain.PageView {
	return &domain.PageView{
		Content: uc.content,
		Links:   uc.links,
		Contact: state,
		SiteURL: uc.siteURL,
		Year:    uc.now().Year(),
	}
}
