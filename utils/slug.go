package utils

import "github.com/gosimple/slug"

// Slugify builds the URL-friendly slug used by categories and products.
func Slugify(name string) string {
	return slug.Make(name)
}
