package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kailas-cloud/placedex/internal/db"
)

// Insert writes the catalog into an empty relational store in one transaction.
func Insert(ctx context.Context, store db.SQLStore, c *Catalog) error {
	tx, err := store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	w := &writer{ctx: ctx, tx: tx, d: store}

	for _, cat := range c.Categories {
		w.exec("categories", []string{"category_id", "category_name", "icon"}, cat.ID, cat.Name, cat.Icon)
	}
	for _, p := range c.Provinces {
		w.exec("provinces", []string{"province_id", "province_name", "region", "image"},
			p.ID, p.Name, p.Region, p.Image)
	}
	for _, u := range c.Users {
		w.exec("users", []string{"user_id", "username", "display_name"}, u.ID, u.Username, u.DisplayName)
	}

	tagIDs := make(map[string]int64)
	for i, name := range c.TagNames() {
		tagIDs[name] = int64(i + 1)
		w.exec("tags", []string{"tag_id", "tag_name"}, int64(i+1), name)
	}

	idx := c.index()
	for _, p := range c.Places {
		var lat, lng any
		if p.Latitude != nil {
			lat, lng = *p.Latitude, *p.Longitude
		}
		w.exec("places", []string{
			"place_id", "title", "description", "location", "main_image",
			"latitude", "longitude", "views", "is_active", "created_at",
			"category_id", "province_id", "user_id",
		},
			p.ID, p.Title, p.Description, p.Location, p.MainImage,
			lat, lng, p.Views, p.IsActive(), store.BindTime(p.CreatedAt),
			idx.categories[p.Category], idx.provinces[p.Province], idx.users[p.Owner],
		)

		for _, t := range distinct(p.Tags) {
			w.exec("place_tags", []string{"place_id", "tag_id"}, p.ID, tagIDs[t])
		}
		for _, u := range distinct(p.LikedBy) {
			w.exec("likes", []string{"place_id", "user_id"}, p.ID, idx.users[u])
		}
		for _, cm := range p.Comments {
			w.exec("comments", []string{"place_id", "user_id", "content", "is_active"},
				p.ID, idx.users[cm.User], cm.Text, cm.IsActive())
		}
	}
	if w.err != nil {
		return w.err
	}

	if store.Name() == "postgres" {
		if err := resyncSequences(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// writer keeps the first error so the insert sequence reads linearly.
type writer struct {
	ctx context.Context
	tx  *sql.Tx
	d   db.Dialect
	err error
}

func (w *writer) exec(table string, cols []string, args ...any) {
	if w.err != nil {
		return
	}
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = w.d.Placeholder(i + 1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := w.tx.ExecContext(w.ctx, q, args...); err != nil {
		w.err = fmt.Errorf("seed %s: %w", table, err)
	}
}

// resyncSequences moves SERIAL sequences past the explicit ids just inserted.
func resyncSequences(ctx context.Context, tx *sql.Tx) error {
	for _, t := range [][2]string{
		{"categories", "category_id"},
		{"provinces", "province_id"},
		{"users", "user_id"},
		{"tags", "tag_id"},
		{"places", "place_id"},
		{"likes", "like_id"},
		{"comments", "comment_id"},
	} {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', '%[2]s'), COALESCE(MAX(%[2]s), 1)) FROM %[1]s",
			t[0], t[1],
		)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("resync %s sequence: %w", t[0], err)
		}
	}
	return nil
}

type index struct {
	categories map[string]int64
	provinces  map[string]int64
	users      map[string]int64
}

func (c *Catalog) index() index {
	idx := index{
		categories: make(map[string]int64, len(c.Categories)),
		provinces:  make(map[string]int64, len(c.Provinces)),
		users:      make(map[string]int64, len(c.Users)),
	}
	for _, cat := range c.Categories {
		idx.categories[cat.Name] = cat.ID
	}
	for _, p := range c.Provinces {
		idx.provinces[p.Name] = p.ID
	}
	for _, u := range c.Users {
		idx.users[u.Username] = u.ID
	}
	return idx
}

func distinct(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
