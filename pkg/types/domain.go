package types

// Category is a logical model kind. The set is closed; see the taxonomy
// package for the directory each one maps to.
type Category string

const (
	CategoryCheckpoints Category = "Checkpoints"
	CategoryLoRA        Category = "LoRA"
	CategoryVAE         Category = "VAE"
	CategoryEmbeddings  Category = "Embeddings"
)

// String returns the category name as shown to operators.
func (c Category) String() string { return string(c) }

// ModelFile is a candidate model filename (not a path) inside a category directory.
// Identity is the name only.
type ModelFile = string
