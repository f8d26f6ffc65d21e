// Package pages renders the HTML pages of the front-end.
package pages

//go:generate go tool templ generate

// Page holds what every page needs for the document shell.
type Page struct {
	Title string
	// RootClass is the class attribute of the <html> element.
	RootClass string
	DarkMode  bool
	LogoURL   string
}

// LoginData is rendered by the login page.
type LoginData struct {
	Page
	Email      string
	RememberMe bool
	// Notice is an informational message, e.g. for the password reset stub.
	Notice string
}

// DashboardData is rendered by the dashboard placeholder.
type DashboardData struct {
	Page
}

func withTitle(p Page, title string) Page {
	if p.Title == "" {
		p.Title = title
	}
	return p
}
