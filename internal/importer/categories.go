package importer

import (
	"fmt"

	"github.com/fozemdestaque/portal/internal/entities"
	"github.com/fozemdestaque/portal/internal/utils"
	"github.com/fozemdestaque/portal/internal/wxr"
)

// fallbackCategorySlug is used when a source category has neither a usable
// nicename nor a usable name.
const fallbackCategorySlug = "sem-categoria"

// resolveCategories builds the slug -> destination id map for this run,
// creating destination categories that do not exist yet. Returns how many
// were created. A store failure aborts the whole run.
func (imp *Importer) resolveCategories(channel *wxr.Channel, state *runState) (int, error) {
	state.categories = make(map[string]string)

	existing, err := imp.store.GetAllCategories()
	if err != nil {
		return 0, fmt.Errorf("loading categories: %w", err)
	}
	bySlug := make(map[string]string, len(existing))
	for _, c := range existing {
		bySlug[c.Slug] = c.ID
	}

	created := 0
	for _, src := range channel.Categories {
		slug := categorySlug(src)

		// First occurrence wins; later duplicates in the export are ignored.
		if _, seen := state.categories[slug]; seen {
			continue
		}

		if id, ok := bySlug[slug]; ok {
			state.categories[slug] = id
			continue
		}

		name := src.Name.String()
		if name == "" {
			name = slug
		}
		category := &entities.Category{Name: name, Slug: slug, Active: true}
		if err := imp.store.CreateCategory(category); err != nil {
			return created, fmt.Errorf("creating category %q: %w", slug, err)
		}
		state.categories[slug] = category.ID
		bySlug[slug] = category.ID
		created++
	}

	return created, nil
}

// categorySlug derives the destination slug for a source category.
func categorySlug(src wxr.Category) string {
	if slug := utils.Slugify(src.NiceName.String()); slug != "" {
		return slug
	}
	if slug := utils.Slugify(src.Name.String()); slug != "" {
		return slug
	}
	return fallbackCategorySlug
}

// resolveItemCategory maps an item's category reference to a destination
// category id, preferring the run map and falling back to a live store
// lookup. Absence of a match yields nil, never an error.
func (imp *Importer) resolveItemCategory(item wxr.Item, state *runState) *string {
	ref, ok := item.CategoryReference()
	if !ok {
		return nil
	}

	slug := utils.Slugify(ref.NiceName)
	if slug == "" {
		slug = utils.Slugify(ref.Text)
	}
	if slug == "" {
		return nil
	}

	if id, ok := state.categories[slug]; ok {
		return &id
	}

	// Fall back to a live lookup for categories that predate this run.
	// Any miss or store error leaves the post uncategorized.
	category, err := imp.store.GetCategoryBySlug(slug)
	if err != nil {
		return nil
	}
	state.categories[slug] = category.ID
	return &category.ID
}
