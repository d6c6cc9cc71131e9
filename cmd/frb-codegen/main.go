package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Unoqwy/flutter-rust-bridge/config"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/generator"
	"github.com/Unoqwy/flutter-rust-bridge/ir"
)

func main() {
	var (
		declsFile   = flag.String("decls", "", "Path to declaration set JSON file")
		configFile  = flag.String("config", "", "Path to YAML config (optional)")
		outFile     = flag.String("out", "", "Dart output path (overrides config)")
		descFile    = flag.String("descriptor", "", "Descriptor JSON output path (overrides config)")
		apiClass    = flag.String("class", "", "Generated API class name (overrides config)")
		positional  = flag.Bool("positional", false, "Emit positional parameters instead of named")
		list        = flag.Bool("list", false, "List declarations and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *declsFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: frb-codegen -decls <decls.json> [-config frb.yaml] [-out api.dart]")
		fmt.Fprintln(os.Stderr, "       frb-codegen -decls <decls.json> -list")
		fmt.Fprintln(os.Stderr, "       frb-codegen -decls <decls.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		generator.SetLogger(logger)
	}

	set, err := loadDecls(*declsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		listDecls(set)
		return
	}

	if *interactive {
		if err := runInteractive(*declsFile, set); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *outFile != "" {
		cfg.DartOutput = *outFile
	}
	if *descFile != "" {
		cfg.DescriptorOutput = *descFile
	}
	if *apiClass != "" {
		cfg.ApiClassName = *apiClass
	}
	if *positional {
		cfg.BindingStyle = "positional"
	}

	if err := run(set, cfg); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func loadDecls(path string) (*ir.DeclSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}
	set := &ir.DeclSet{}
	if err := json.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("decode declarations: %w", err)
	}
	return set, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(set *ir.DeclSet, cfg *config.Config) error {
	artifact, err := generator.New(cfg.GeneratorOptions()).Generate(set)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.DartOutput, []byte(artifact.DartCode), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.DartOutput, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", cfg.DartOutput, len(artifact.DartCode))

	if cfg.DescriptorOutput != "" {
		data, err := artifact.Descriptor.MarshalIndent()
		if err != nil {
			return fmt.Errorf("encode descriptor: %w", err)
		}
		if err := os.WriteFile(cfg.DescriptorOutput, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.DescriptorOutput, err)
		}
		fmt.Printf("Wrote %s\n", cfg.DescriptorOutput)
	}

	fmt.Printf("Types: %d, functions: %d\n",
		len(artifact.Descriptor.Types), len(artifact.Descriptor.Funcs))
	return nil
}

func listDecls(set *ir.DeclSet) {
	fmt.Printf("Declarations: %d\n\n", len(set.Decls))
	for _, d := range set.Decls {
		switch decl := d.(type) {
		case *ir.StructDecl:
			kind := "struct"
			if decl.Tuple {
				kind = "tuple struct"
			}
			fmt.Printf("  %s %s (%d fields)\n", kind, decl.Name, len(decl.Fields))
		case *ir.EnumDecl:
			fmt.Printf("  enum %s (%d variants)\n", decl.Name, len(decl.Variants))
		case *ir.FunctionSig:
			fmt.Printf("  fn %s\n", formatSig(decl))
		}
	}
}

func formatSig(sig *ir.FunctionSig) string {
	var params []string
	for _, p := range sig.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}
	s := sig.Name + "(" + strings.Join(params, ", ") + ")"
	if !sig.Return.IsUnit() {
		s += " -> " + sig.Return.String()
	}
	var marks []string
	if sig.Async {
		marks = append(marks, "async")
	}
	if sig.Fallible {
		marks = append(marks, "fallible")
	}
	if len(marks) > 0 {
		s += " [" + strings.Join(marks, ", ") + "]"
	}
	return s
}

var (
	errHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	errItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// printError renders a generation failure. Reports list every collected
// error; color is used only when stderr is a terminal.
func printError(err error) {
	styled := term.IsTerminal(int(os.Stderr.Fd()))

	report, ok := err.(*errors.Report)
	if !ok {
		line := "Error: " + err.Error()
		if styled {
			line = errItemStyle.Render(line)
		}
		fmt.Fprintln(os.Stderr, line)
		return
	}

	header := fmt.Sprintf("Generation failed with %d error(s):", report.Len())
	if styled {
		header = errHeaderStyle.Render(header)
	}
	fmt.Fprintln(os.Stderr, header)
	for _, e := range report.Errors {
		line := "  - " + e.Error()
		if styled {
			line = errItemStyle.Render(line)
		}
		fmt.Fprintln(os.Stderr, line)
	}
}
