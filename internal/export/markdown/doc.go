// Package markdown renders accepted content documents as markdown
// files: front matter between "---" delimiters followed by the body.
// Output file names come from a template resolved per record, and every
// resolved path is confined to the configured output directory.
package markdown
