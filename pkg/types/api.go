package types

// CategoriesResponse is returned by GET /categories.
type CategoriesResponse struct {
	// Categories in display order.
	// example: ["Checkpoints","LoRA","VAE","Embeddings"]
	Categories []Category `json:"categories"`
}

// ModelsResponse wraps the candidate files returned by GET /models.
type ModelsResponse struct {
	// Category that was scanned.
	// example: Checkpoints
	Category Category `json:"category"`
	// Library root the listing was computed for.
	// example: /home/user/stable-diffusion-webui/models
	LibraryRoot string `json:"library_root"`
	// Candidate filenames, in the order the filesystem reported them.
	Models []ModelFile `json:"models"`
}

// ExportRequest is the POST /export payload.
type ExportRequest struct {
	// Library root. If empty, the configured root is used.
	// example: /home/user/stable-diffusion-webui/models
	LibraryRoot string `json:"library_root,omitempty"`
	// Category of the selected file.
	// example: LoRA
	Category Category `json:"category"`
	// Selected filename as returned by GET /models.
	// example: detail-tweaker.safetensors
	FileName string `json:"file"`
	// Destination directory. If empty, the configured default export dir is used.
	// example: /mnt/backup/models
	Destination string `json:"destination,omitempty"`
}

// ExportResponse reports the outcome of one export.
type ExportResponse struct {
	// True when the file was copied.
	OK bool `json:"ok"`
	// Display message with a success or failure marker.
	// example: ✅ exported to /mnt/backup/models
	Message string `json:"message"`
	// Machine-readable outcome: none, missing_parameters, source_not_found, io_error.
	// example: none
	Reason string `json:"reason"`
	// Destination directory, set on success.
	Destination string `json:"destination,omitempty"`
}

// SettingsResponse exposes the values a presentation layer pre-fills.
type SettingsResponse struct {
	LibraryRoot      string `json:"library_root"`
	DefaultExportDir string `json:"default_export_dir"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unknown category: Hypernetworks
	Error string `json:"error"`
	// HTTP status code.
	// example: 400
	Code int `json:"code"`
}
