// Package seed reads catalog fixtures from YAML and loads them into a store.
package seed

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog is the full fixture document.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Provinces  []Province `yaml:"provinces"`
	Users      []User     `yaml:"users"`
	Places     []Place    `yaml:"places"`
}

// Category fixture.
type Category struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Province fixture.
type Province struct {
	ID     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Region string `yaml:"region"`
	Image  string `yaml:"image"`
}

// User fixture.
type User struct {
	ID          int64  `yaml:"id"`
	Username    string `yaml:"username"`
	DisplayName string `yaml:"display_name"`
}

// Comment fixture. Active defaults to true.
type Comment struct {
	User   string `yaml:"user"`
	Text   string `yaml:"text"`
	Active *bool  `yaml:"active"`
}

// IsActive reports whether the comment counts towards engagement.
func (c Comment) IsActive() bool { return c.Active == nil || *c.Active }

// Place fixture. References are by name; tags are created on first use.
type Place struct {
	ID          int64     `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Location    string    `yaml:"location"`
	MainImage   string    `yaml:"main_image"`
	Category    string    `yaml:"category"`
	Province    string    `yaml:"province"`
	Owner       string    `yaml:"owner"`
	Latitude    *float64  `yaml:"latitude"`
	Longitude   *float64  `yaml:"longitude"`
	Views       int64     `yaml:"views"`
	Active      *bool     `yaml:"active"`
	CreatedAt   time.Time `yaml:"created_at"`
	Tags        []string  `yaml:"tags"`
	LikedBy     []string  `yaml:"liked_by"`
	Comments    []Comment `yaml:"comments"`
}

// IsActive reports whether the place is visible. Active defaults to true.
func (p Place) IsActive() bool { return p.Active == nil || *p.Active }

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks identities and references.
func (c *Catalog) Validate() error {
	var errs []error

	categories := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID <= 0 || cat.Name == "" {
			errs = append(errs, fmt.Errorf("category %d: id and name are required", cat.ID))
		}
		if categories[cat.Name] {
			errs = append(errs, fmt.Errorf("category %q: duplicate name", cat.Name))
		}
		categories[cat.Name] = true
	}

	provinces := make(map[string]bool)
	for _, p := range c.Provinces {
		if p.ID <= 0 || p.Name == "" {
			errs = append(errs, fmt.Errorf("province %d: id and name are required", p.ID))
		}
		if provinces[p.Name] {
			errs = append(errs, fmt.Errorf("province %q: duplicate name", p.Name))
		}
		provinces[p.Name] = true
	}

	users := make(map[string]bool)
	for _, u := range c.Users {
		if u.ID <= 0 || u.Username == "" {
			errs = append(errs, fmt.Errorf("user %d: id and username are required", u.ID))
		}
		users[u.Username] = true
	}

	ids := make(map[int64]bool)
	for _, p := range c.Places {
		if p.ID <= 0 || p.Title == "" {
			errs = append(errs, fmt.Errorf("place %d: id and title are required", p.ID))
		}
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("place %d: duplicate id", p.ID))
		}
		ids[p.ID] = true
		if !categories[p.Category] {
			errs = append(errs, fmt.Errorf("place %d: unknown category %q", p.ID, p.Category))
		}
		if !provinces[p.Province] {
			errs = append(errs, fmt.Errorf("place %d: unknown province %q", p.ID, p.Province))
		}
		if !users[p.Owner] {
			errs = append(errs, fmt.Errorf("place %d: unknown owner %q", p.ID, p.Owner))
		}
		if (p.Latitude == nil) != (p.Longitude == nil) {
			errs = append(errs, fmt.Errorf("place %d: latitude and longitude must be set together", p.ID))
		}
		for _, u := range p.LikedBy {
			if !users[u] {
				errs = append(errs, fmt.Errorf("place %d: like by unknown user %q", p.ID, u))
			}
		}
		for _, cm := range p.Comments {
			if !users[cm.User] {
				errs = append(errs, fmt.Errorf("place %d: comment by unknown user %q", p.ID, cm.User))
			}
		}
	}

	return errors.Join(errs...)
}

// TagNames returns the distinct tag names in first-use order. A tag's id is
// its 1-based position in this list.
func (c *Catalog) TagNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range c.Places {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				names = append(names, t)
			}
		}
	}
	return names
}
