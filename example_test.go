package docprep_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	docprep "github.com/alnah/go-docprep"
)

// Example processes one document in memory. Skipping the images stage keeps
// the example offline.
func Example() {
	p, err := docprep.NewPreprocessor(docprep.WithSkipStages("images"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc := p.Process(context.Background(), docprep.Document{
		Name:    "queues.md",
		Content: "See [workers](/docs/{{version}}/queues#running-the-queue-worker).",
	}, "")

	fmt.Println(doc.Content)
	// Output: See [workers](queues.md#running-the-queue-worker).
}

// ExampleRunner_Run processes a directory.
func ExampleRunner_Run() {
	src, _ := os.MkdirTemp("", "docprep-src")
	out, _ := os.MkdirTemp("", "docprep-out")
	defer func() { _ = os.RemoveAll(src) }()
	defer func() { _ = os.RemoveAll(out) }()

	_ = os.WriteFile(filepath.Join(src, "sail.md"), []byte("```shell tab=macOS\n./vendor/bin/sail up\n```\n"), 0o644)

	p, err := docprep.NewPreprocessor()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	report, err := docprep.NewRunner(p).Run(context.Background(), src, out)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	data, _ := os.ReadFile(filepath.Join(out, "sail.md"))
	fmt.Printf("processed %d file(s)\n%s", report.Succeeded(), data)
	// Output:
	// processed 1 file(s)
	// **macOS**
	//
	// ```shell
	// ./vendor/bin/sail up
	// ```
}
