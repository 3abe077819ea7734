package params

import (
	"path/filepath"
	"strings"
)

// Utility flags drive the search index and embedding generators.
const (
	FlagBuildIndex         = "build-index"
	FlagExportIndex        = "export-index"
	FlagGenerateEmbeddings = "generate-embeddings"
	FlagEmbeddingBatchSize = "embedding-batch-size"
	FlagEmbeddingModel     = "embedding-model"
)

// IndexExtension is the file extension required for exported indexes.
const IndexExtension = ".idx"

// UtilityOperationFlags are the index and embedding operations.
var UtilityOperationFlags = []string{FlagBuildIndex, FlagExportIndex, FlagGenerateEmbeddings}

var utilitySchema = Schema{
	{Name: FlagBuildIndex, Kind: KindBool, Usage: "Build the task search index"},
	{Name: FlagExportIndex, Kind: KindString, Usage: "Export the search index to a " + IndexExtension + " file"},
	{Name: FlagGenerateEmbeddings, Kind: KindBool, Usage: "Generate embeddings for stored tasks"},
	{Name: FlagEmbeddingBatchSize, Kind: KindInt, Default: Int(32), Usage: "Embedding batch size (1-100)"},
	{Name: FlagEmbeddingModel, Kind: KindString, Usage: "Embedding model name"},
}

// UtilityHandler validates index and embedding settings.
type UtilityHandler struct{ flagGroup }

// NewUtilityHandler returns the handler for index and embedding maintenance flags.
func NewUtilityHandler() *UtilityHandler {
	return &UtilityHandler{flagGroup{id: HandlerUtility, schema: utilitySchema}}
}

// Validate checks the index path and embedding settings.
func (h *UtilityHandler) Validate(v Values) error {
	return firstError(
		nonBlank(v, FlagExportIndex, maxPathLen),
		indexExtension(v),
		intRange(v, FlagEmbeddingBatchSize, 1, 100),
		nonBlank(v, FlagEmbeddingModel, 0),
	)
}

// Requested reports an index or embedding operation.
func (h *UtilityHandler) Requested(ns Namespace) bool {
	return ns.AnySet(UtilityOperationFlags...)
}

func indexExtension(v Values) error {
	path, ok := v.String(FlagExportIndex)
	if ok && !strings.EqualFold(filepath.Ext(path), IndexExtension) {
		return fieldErrorf(FlagExportIndex, "--%s must end in %s, got %q", FlagExportIndex, IndexExtension, path)
	}
	return nil
}
