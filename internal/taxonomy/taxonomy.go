// Package taxonomy maps model categories to their fixed library subdirectories
// and lists candidate model files under a library root.
package taxonomy

import (
	"modelexport/pkg/types"
)

// subdirs is the category table. It is never mutated.
var subdirs = map[types.Category]string{
	types.CategoryCheckpoints: "Stable-diffusion",
	types.CategoryLoRA:        "Lora",
	types.CategoryVAE:         "VAE",
	types.CategoryEmbeddings:  "embeddings",
}

var order = []types.Category{
	types.CategoryCheckpoints,
	types.CategoryLoRA,
	types.CategoryVAE,
	types.CategoryEmbeddings,
}

// extensions are matched case-sensitively against the end of a filename.
var extensions = []string{".ckpt", ".safetensors", ".pt", ".bin"}

// Subdirectory returns the directory name, relative to a library root, that
// holds files of category c. Callers must pass a category from Categories;
// any other value yields "".
func Subdirectory(c types.Category) string { return subdirs[c] }

// Categories returns the closed category set in display order.
func Categories() []types.Category { return append([]types.Category(nil), order...) }

// Extensions returns the recognized model file suffixes.
func Extensions() []string { return append([]string(nil), extensions...) }

// ParseCategory validates s against the closed category set.
func ParseCategory(s string) (types.Category, error) {
	c := types.Category(s)
	if _, ok := subdirs[c]; !ok {
		return "", ErrUnknownCategory(s)
	}
	return c, nil
}

// IsKnown reports whether c belongs to the category set.
func IsKnown(c types.Category) bool {
	_, ok := subdirs[c]
	return ok
}
