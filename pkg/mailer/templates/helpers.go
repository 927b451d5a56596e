package templates

import "time"

// Brand carries the company details stamped on every email.
type Brand struct {
	CompanyName string
	AppName     string
	LogoURL     string
	SupportURL  string
	LoginURL    string
}

// Option customizes EmailData
type Option func(*EmailData)

func WithRole(role string) Option { return func(d *EmailData) { d.Role = role } }

func WithJoinedAt(t time.Time) Option {
	return func(d *EmailData) {
		if !t.IsZero() {
			d.JoinedAt = t.UTC()
		}
	}
}

// NewWelcomeData builds the data for the welcome template.
func NewWelcomeData(b Brand, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		LogoURL:     b.LogoURL,
		SupportURL:  b.SupportURL,
		LoginURL:    b.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
