package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	strictjson "github.com/openhomelab/strictjson"
	"github.com/openhomelab/strictjson/script"
)

func main() {
	fs := flag.NewFlagSet("scriptcheck", flag.ExitOnError)
	var format string
	var maxDepth int
	fs.StringVar(&format, "format", "", "document format: json or yaml (default: by file extension)")
	fs.IntVar(&maxDepth, "max-depth", 64, "maximum nesting depth accepted (0 = unlimited)")
	fs.Usage = usage(fs)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	file := fs.Arg(0)

	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("read: %v", err)
	}

	v, err := load(data, file, format, maxDepth)
	if err != nil {
		report(file, err)
		os.Exit(1)
	}

	s, err := script.Parse(v)
	if err != nil {
		report(file, err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok (%d rules, %d requirements)\n", file, len(s.Rules), len(s.Requirements))
}

func load(data []byte, file, format string, maxDepth int) (strictjson.Value, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "yaml":
		return strictjson.FromYAMLBytes(data, strictjson.ReadOpt{MaxDepth: maxDepth})
	case "json":
		return strictjson.FromJSONBytes(data, strictjson.ReadOpt{MaxDepth: maxDepth})
	default:
		fatalf("unknown format %q", format)
		return strictjson.Value{}, nil
	}
}

func report(file string, err error) {
	if de, ok := strictjson.AsDecodeError(err); ok {
		for _, pe := range de.Errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", file, pe.Error())
		}
		return
	}
	if pe, ok := strictjson.AsParseError(err); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", file, pe.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "scriptcheck validates a monitor script document\n\nUsage:\n  scriptcheck [-format json|yaml] [-max-depth N] <file>")
		fs.PrintDefaults()
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "scriptcheck: "+format+"\n", args...)
	os.Exit(2)
}
