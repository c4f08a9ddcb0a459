package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linebook/internal/adapters/chessrules"
	explorerUC "linebook/internal/usecase/explorer"
)

var (
	verbose   bool
	viewPath  string
	shareBase string
)

var rootCmd = &cobra.Command{
	Use:   "linebook",
	Short: "Compile, explore and share branching opening lines",
	Long: `linebook works with opening documents written as branching move lines:

  e4 e5 Nf3 Nc6 c3:
    - Bc5 d4 exd4
    - d6 d4 Nf6

FILE may be "-" to read the document from stdin.`,
	SilenceUsage: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile FILE",
	Short: "Check every move of a document and print the position tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uc, text, err := setup(args[0])
		if err != nil {
			return err
		}
		doc, err := uc.Load(cmd.Context(), text)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"orientation": doc.Orientation,
			"plies":       doc.Moves.Depth(),
			"lines":       doc.Moves.Leaves(),
			"tree":        doc.Positions,
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Print the position and candidate moves at a navigation path",
	Example: `  linebook view ponziani.yaml --path 0,0,0,0,0
  linebook view - --path 0 < line.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := parsePath(viewPath)
		if err != nil {
			return err
		}
		uc, text, err := setup(args[0])
		if err != nil {
			return err
		}
		doc, err := uc.Load(cmd.Context(), text)
		if err != nil {
			return err
		}
		view, err := uc.View(doc, path)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), view)
	},
}

var shareCmd = &cobra.Command{
	Use:   "share FILE",
	Short: "Print a share token (and link, with --base) for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uc, text, err := setup(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), uc.Share(text))
	},
}

var loadCmd = &cobra.Command{
	Use:   "load TOKEN|URL",
	Short: "Print the document carried by a share token or link",
	Long:  "Malformed tokens print the empty document.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := explorerUC.NewExplorerUseCase(chessrules.New(), newLogger())
		arg := args[0]
		var text string
		if strings.Contains(arg, "://") {
			text = uc.OpenURL(arg)
		} else {
			text = uc.Open(arg)
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in example document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), explorerUC.DefaultDocument)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	viewCmd.Flags().StringVar(&viewPath, "path", "", "comma separated child indices from the root")
	shareCmd.Flags().StringVar(&shareBase, "base", "", "page URL the share link points at")

	rootCmd.AddCommand(compileCmd, viewCmd, shareCmd, loadCmd, defaultCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func setup(file string) (*explorerUC.ExplorerUseCase, string, error) {
	text, err := readDocument(file)
	if err != nil {
		return nil, "", err
	}
	uc := explorerUC.NewExplorerUseCase(chessrules.New(), newLogger(), explorerUC.WithShareBase(shareBase))
	return uc, text, nil
}

func readDocument(file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

func parsePath(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad path element %q: %w", p, err)
		}
		path = append(path, idx)
	}
	return path, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
