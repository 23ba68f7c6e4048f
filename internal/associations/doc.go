// Package associations folds desktop-entry files into a map from MIME type
// to the ordered list of files that declare it. Broken or irrelevant files
// are reported and skipped; they never abort the fold.
package associations
