// Package render turns one processed Markdown document into a standalone
// HTML preview page.
//
// Rendering order: goldmark (GFM, raw HTML allowed) with fenced code blocks
// drawn by internal/highlight, then bluemonday sanitizing, then relative
// img/a paths rewritten to file:// URLs against the document directory, then
// the page template with the profile stylesheet.
package render
