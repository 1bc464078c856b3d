package domain

import "context"

// Brand is the practice identity shown in the navbar and footer
type Brand struct {
	Name     string `yaml:"name" validate:"required"`
	Wordmark string `yaml:"wordmark" validate:"required"`
	Suffix   string `yaml:"suffix" validate:"required"`
	Tagline  string `yaml:"tagline"`
}

// NavLink is one entry of the navbar and footer quick links
type NavLink struct {
	Label string `yaml:"label" validate:"required"`
	Href  string `yaml:"href" validate:"required,startswith=#"`
}

// Feature is a {title, description, icon} record rendered by the shared list
// templates. Number is only set for process steps.
type Feature struct {
	Number      string `yaml:"number,omitempty"`
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Icon        string `yaml:"icon"`
}

// Section is a titled, ordered list of features
type Section struct {
	ID      string    `yaml:"id" validate:"required"`
	Eyebrow string    `yaml:"eyebrow"`
	Title   string    `yaml:"title"`
	Intro   string    `yaml:"intro"`
	ItemCTA string    `yaml:"item_cta"`
	Items   []Feature `yaml:"items" validate:"required,min=1,dive"`
}

type Hero struct {
	Badge        string `yaml:"badge"`
	Title        string `yaml:"title" validate:"required"`
	Highlight    string `yaml:"highlight"`
	Subtitle     string `yaml:"subtitle"`
	PrimaryCTA   string `yaml:"primary_cta" validate:"required"`
	SecondaryCTA string `yaml:"secondary_cta"`
	Image        string `yaml:"image"`
	CardTitle    string `yaml:"card_title"`
	CardText     string `yaml:"card_text"`
}

type About struct {
	ID         string   `yaml:"id" validate:"required"`
	Eyebrow    string   `yaml:"eyebrow"`
	Title      string   `yaml:"title" validate:"required"`
	Highlight  string   `yaml:"highlight"`
	Body       string   `yaml:"body" validate:"required"`
	Highlights []string `yaml:"highlights" validate:"dive,required"`
	Years      string   `yaml:"years"`
	YearsLabel string   `yaml:"years_label"`
	MoreLabel  string   `yaml:"more_label"`
}

type ContactSection struct {
	ID                 string `yaml:"id" validate:"required"`
	Title              string `yaml:"title" validate:"required"`
	Intro              string `yaml:"intro"`
	PhoneLabel         string `yaml:"phone_label"`
	PhoneDisplay       string `yaml:"phone_display" validate:"required"`
	WhatsAppDisplay    string `yaml:"whatsapp_display"`
	EmailLabel         string `yaml:"email_label"`
	LocationLabel      string `yaml:"location_label"`
	Location           string `yaml:"location"`
	NameLabel          string `yaml:"name_label" validate:"required"`
	NamePlaceholder    string `yaml:"name_placeholder"`
	EmailPlaceholder   string `yaml:"email_placeholder"`
	MessageLabel       string `yaml:"message_label" validate:"required"`
	MessagePlaceholder string `yaml:"message_placeholder"`
	SubmitLabel        string `yaml:"submit_label" validate:"required"`
	SubmittingLabel    string `yaml:"submitting_label" validate:"required"`
	OpenMailLabel      string `yaml:"open_mail_label"`
}

// ScheduleRow is one line of the opening hours table
type ScheduleRow struct {
	Days  string `yaml:"days" validate:"required"`
	Hours string `yaml:"hours" validate:"required"`
}

type Footer struct {
	Tagline         string        `yaml:"tagline"`
	LinksTitle      string        `yaml:"links_title"`
	ScheduleTitle   string        `yaml:"schedule_title"`
	Schedule        []ScheduleRow `yaml:"schedule" validate:"dive"`
	NewsletterTitle string        `yaml:"newsletter_title"`
	NewsletterText  string        `yaml:"newsletter_text"`
	Rights          string        `yaml:"rights"`
}

// SiteContent is the static configuration table behind the page
type SiteContent struct {
	Lang     string         `yaml:"lang" validate:"required"`
	Brand    Brand          `yaml:"brand"`
	Nav      []NavLink      `yaml:"nav" validate:"required,min=1,dive"`
	NavCTA   string         `yaml:"nav_cta"`
	Hero     Hero           `yaml:"hero"`
	Benefits Section        `yaml:"benefits"`
	About    About          `yaml:"about"`
	Services Section        `yaml:"services"`
	Process  Section        `yaml:"process"`
	Contact  ContactSection `yaml:"contact"`
	Footer   Footer         `yaml:"footer"`
}

// ContentRepository loads the site content table
type ContentRepository interface {
	Load() (*SiteContent, error)
}

// ContactLinks are the deep links shown next to the form and in the
// floating action buttons
type ContactLinks struct {
	Email    string
	Mailto   string
	Tel      string
	WhatsApp string
}

// PageView is everything the page template needs for one render
type PageView struct {
	Content    *SiteContent
	Links      ContactLinks
	Contact    ContactState
	CSRFToken  string
	HandoffURL string   // set right after a successful no-JS submission
	FormErrors []string // field messages after a rejected no-JS submission
	SiteURL    string
	Year       int
}

// PageUsecase assembles page views for a visitor session
type PageUsecase interface {
	Content() *SiteContent
	Render(ctx context.Context, state ContactState) *PageView
}
