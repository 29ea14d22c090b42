// Package corpus discovers and loads the text content that references stored objects.
//
// Discovery walks the content root in lexical order and keeps files matching
// Pattern (markdown, text, JSON and YAML), skipping node_modules and .git
// directories and OS metadata files. Loading reads the discovered files through a
// bounded errgroup; an unreadable file is logged and reported in LoadResult.Skipped
// instead of failing the whole load.
//
// # Usage
//
//	c, err := corpus.Open(cfg.Content.Path, cfg.Content.Workers, logger)
//	result, err := c.Load(ctx)
package corpus
