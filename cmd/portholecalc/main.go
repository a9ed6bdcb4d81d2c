package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"Porthole/internal/calc/porthole"
	"Porthole/internal/casefile"
	"Porthole/internal/present"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portholecalc",
		Short:        "Fatigue FOS and life of a port hole on a pressurised tube",
		SilenceUsage: true,
	}
	root.AddCommand(newComputeCmd(), newDiagramCmd(), newDefaultsCmd())
	return root
}

func newComputeCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Evaluate a case file (or the nominal case) and print the outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && file == "" {
				return fmt.Errorf("--watch needs --file")
			}
			in := porthole.Defaults()
			if file != "" {
				var err error
				if in, err = casefile.Load(file); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if err := printResult(out, in, asJSON); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return casefile.Watch(cmd.Context(), file, func(in porthole.Input) {
				fmt.Fprintln(out)
				if err := printResult(out, in, asJSON); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML case file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recompute whenever the case file changes")
	return cmd
}

func newDiagramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagram",
		Short: "Print the input/output dependency diagram as Graphviz DOT",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), present.Diagram())
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the nominal case as a YAML case file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := casefile.Marshal(porthole.Defaults())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func printResult(w io.Writer, in porthole.Input, asJSON bool) error {
	res := porthole.Calculate(in)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, c := range present.Cards(res) {
		fmt.Fprintf(tw, "%s\t%s\t\n", c.Label, c.Text)
	}
	return tw.Flush()
}
