package main

import (
	"fmt"
	"io"
	"os"

	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/pipeline"
	"github.com/peterh/liner"
)

// memoryReader serves one in-memory snippet as "watch.mach", letting
// --watch run the real pipeline without touching disk.
type memoryReader struct {
	path string
	src  []byte
}

func (r *memoryReader) ReadFile(path string) ([]byte, error) {
	if path == r.path {
		return r.src, nil
	}
	return nil, fmt.Errorf("watch: no such snippet file %q", path)
}

func (r *memoryReader) Exists(path string) bool { return path == r.path }

// runWatch is a REPL-style loop, grounded on the teacher's interactive
// line-editing session: it reads a snippet of mach source terminated by
// a blank line, runs it through the pipeline, and prints diagnostics —
// a fast inner loop for the semantic stages without a file on disk.
func runWatch(flags *sharedFlags) error {
	opts, err := flags.buildOptions("watch.mach")
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	fmt.Println(cyan("machc check --watch") + dim(" — submit a snippet, blank line to run, Ctrl-D to exit"))

	for {
		var lines []string
		for {
			prompt := "mach> "
			if len(lines) > 0 {
				prompt = "   -> "
			}
			input, err := line.Prompt(prompt)
			if err == io.EOF {
				fmt.Println(green("\ngoodbye"))
				return nil
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
				return err
			}
			if input == "" {
				break
			}
			lines = append(lines, input)
			line.AppendHistory(input)
		}
		if len(lines) == 0 {
			continue
		}

		src := ""
		for _, l := range lines {
			src += l + "\n"
		}

		sink := diag.NewSink()
		d := pipeline.NewDriver(&memoryReader{path: "watch.mach", src: []byte(src)}, sink)
		res, err := d.Run(opts)
		if err != nil {
			fmt.Printf("%s %v\n", red("error:"), err)
			continue
		}
		var sources map[string][]byte
		if res != nil {
			sources = res.Sources
		}
		renderDiagnostics(sink, sources)
		fmt.Println(summarize(sink))
	}
}
