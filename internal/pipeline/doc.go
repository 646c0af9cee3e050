// Package pipeline implements the Markdown rewrite stages applied to every
// document of the manual, in this fixed order:
//
//  1. images   - download remote <img> sources and point them at local assets
//  2. links    - turn /docs/{{version}}/page links into page.md links
//  3. diff     - retag html fences carrying [tl! add|remove] markers as diff
//  4. php-tags - retag php fences without an opening <?php tag as php-line
//  5. tabs     - expand ```lang tab=Title shorthand into a bold title + fence
//
// Every stage except images is a pure string function. Stages share no state
// across calls, so one stage value may serve any number of documents.
//
// Fenced blocks are matched from an opening fence to the first following
// ``` (non-greedy). Nested fences of the same marker are not supported.
package pipeline
