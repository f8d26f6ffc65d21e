package static

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:generate npx tailwindcss -c ../../tailwind.config.js -i ../../web/styles/input.css -o static/app.css --minify

//go:embed static/*
var StaticFS embed.FS

// FS returns the embedded static files rooted at the static directory.
func FS() (fs.FS, error) {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded static files: %w", err)
	}
	return sub, nil
}

// LogoPath returns the URL of the logo matching the display mode.
func LogoPath(dark bool) string {
	if dark {
		return "/static/logo-dark.svg"
	}
	return "/static/logo-light.svg"
}
