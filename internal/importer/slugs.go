package importer

import "fmt"

// allocateSlug returns the base slug if it is free, otherwise the first free
// "-1", "-2", ... suffixed variant. Probing is sequential against live store
// state; concurrent importers racing on the same base slug are not defended
// against, since imports run as singleton operator jobs.
func (imp *Importer) allocateSlug(base string) (string, error) {
	if base == "" {
		base = "post"
	}

	exists, err := imp.store.PostSlugExists(base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		exists, err := imp.store.PostSlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
