// Package theme keeps the light/dark display mode of a client and mirrors it
// onto the class list of the document root.
package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/admindash/internal/prefs"
)

// Mode is the display mode of a client.
type Mode int

const (
	Light Mode = iota
	Dark
)

// DarkClass is the marker class applied to the document root in dark mode.
const DarkClass = "dark"

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseColorScheme reads the value of the Sec-CH-Prefers-Color-Scheme client
// hint. Anything but "dark" is light, like a failing prefers-color-scheme media query.
func ParseColorScheme(hint string) Mode {
	hint = strings.Trim(strings.TrimSpace(hint), `"`)
	if strings.EqualFold(hint, "dark") {
		return Dark
	}
	return Light
}

// Controller owns the mode of one client. It is the only writer of the root
// class list and keeps it in line with the mode after every call.
type Controller struct {
	store prefs.Store
	mode  Mode
	root  *RootClasses
}

// NewController initializes the mode from the stored preference and falls
// back to the system color scheme when nothing is stored.
func NewController(ctx context.Context, store prefs.Store, system Mode, root *RootClasses) *Controller {
	c := &Controller{
		store: store,
		mode:  system,
		root:  root,
	}

	stored, ok, err := store.Get(ctx, prefs.KeyTheme)
	if err != nil {
		log.Warn("Failed to read theme preference, using system color scheme", "error", err)
		ok = false
	}
	if ok && stored != "" {
		c.mode = Light
		if stored == Dark.String() {
			c.mode = Dark
		}
	}

	c.apply()
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// IsDarkMode reports whether the client is in dark mode.
func (c *Controller) IsDarkMode() bool {
	return c.mode == Dark
}

// Root returns the class list of the document root.
func (c *Controller) Root() *RootClasses {
	return c.root
}

// Toggle flips the mode and stores it as an explicit preference, which takes
// precedence over the system color scheme from now on.
func (c *Controller) Toggle(ctx context.Context) error {
	next := c.mode.Toggle()
	if err := c.store.Set(ctx, prefs.KeyTheme, next.String()); err != nil {
		return fmt.Errorf("failed to store theme preference: %w", err)
	}
	c.mode = next
	c.apply()
	return nil
}

func (c *Controller) apply() {
	if c.mode == Dark {
		c.root.Add(DarkClass)
	} else {
		c.root.Remove(DarkClass)
	}
}
