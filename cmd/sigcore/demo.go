package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sigcore"
)

type scenario struct {
	name string
	run  func(w io.Writer)
}

var scenarios = []scenario{
	{"subscribe", func(w io.Writer) {
		s := sigcore.NewSignal(0)
		log := []int{}
		s.Subscribe(func() { log = append(log, s.Peek()) })

		s.Write(1)
		s.Write(1)
		s.Write(2)

		fmt.Fprintf(w, "log=%v\n", log)
	}},
	{"computed", func(w io.Writer) {
		a := sigcore.NewSignal(1)
		b := sigcore.NewSignal(2)
		runs := 0
		c := sigcore.NewComputed(func() int {
			runs++
			return a.Read() + b.Read()
		})

		c.Read()
		c.Read()
		fmt.Fprintf(w, "value=%d runs=%d\n", c.Read(), runs)

		a.Write(10)
		fmt.Fprintf(w, "value=%d runs=%d\n", c.Read(), runs)
	}},
	{"batch", func(w io.Writer) {
		a := sigcore.NewSignal(1)
		b := sigcore.NewSignal(2)
		runs := 0
		sigcore.NewEffect(func() {
			runs++
			fmt.Fprintf(w, "effect a=%d b=%d\n", a.Read(), b.Read())
		})

		sigcore.Batch(func() {
			a.Write(10)
			b.Write(20)
		})
		fmt.Fprintf(w, "runs=%d\n", runs)
	}},
	{"untracked", func(w io.Writer) {
		tracked := sigcore.NewSignal("a")
		config := sigcore.NewSignal("x")
		runs := 0
		sigcore.NewEffect(func() {
			runs++
			_ = tracked.Read()
			_ = config.Peek()
			_ = sigcore.Untrack(config.Read)
		})

		config.Write("y")
		fmt.Fprintf(w, "after untracked write runs=%d\n", runs)
		tracked.Write("b")
		fmt.Fprintf(w, "after tracked write runs=%d\n", runs)
	}},
}

func demoCmd(logger func() *slog.Logger) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, name := range only {
				if !slices.ContainsFunc(scenarios, func(s scenario) bool { return s.name == name }) {
					return fmt.Errorf("unknown scenario %q", name)
				}
			}

			for _, s := range scenarios {
				if len(only) > 0 && !slices.Contains(only, s.name) {
					continue
				}

				fmt.Fprintf(out, "== %s\n", s.name)
				sigcore.NewRuntime(sigcore.WithLogger(logger())).Run(func() {
					s.run(out)
				})
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only the named scenarios")

	return cmd
}
