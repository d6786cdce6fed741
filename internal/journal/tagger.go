package journal

import "context"

// ImageTagger produces label lists for images, one list per image in
// input order. Implementations are external (cloud vision APIs); the
// core only consumes the flattened output via FlattenLabels.
//
// A nil or failing tagger is not an error condition for callers: the
// entry falls back to DeriveTags over its text.
type ImageTagger interface {
	LabelImages(ctx context.Context, imagePaths []string) ([][]string, error)
}
