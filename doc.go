// Package docprep preprocesses a directory of Markdown files from a localized
// technical manual into a portable dialect for a downstream book generator.
//
// Each document passes through five stages in a fixed order:
//
//  1. images: remote <img> sources are downloaded into the asset directory
//     and rewritten to _static/laravel/<file>;
//  2. links: (/docs/{{version}}/page#anchor) becomes (page.md#anchor);
//  3. diff: ```html blocks with [tl! add]/[tl! remove] lines become ```diff;
//  4. php-tags: ```php blocks without "<?php" become ```php-line;
//  5. tabs: "```lang tab=Title" openers become a bold title and "```lang".
//
// Basic usage:
//
//	p, err := docprep.NewPreprocessor()
//	if err != nil {
//	    return err
//	}
//	report, err := docprep.NewRunner(p).Run(ctx, "source/docs", "build/docs")
//	if err != nil {
//	    return err
//	}
//	if err := report.Err(); err != nil {
//	    return err
//	}
//
// Fetch failures are logged and leave the remote URL in place; they never
// fail a document. Read and write failures fail only the affected document.
package docprep
