package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/basicstrategy/internal/tui"
	"github.com/lox/basicstrategy/strategy"
)

type ChartCmd struct {
	Table string `arg:"" optional:"" default:"" help:"Chart to print (hard, soft, pairs); all when omitted"`
}

func (c *ChartCmd) Run() error {
	return c.print(os.Stdout)
}

func (c *ChartCmd) print(w io.Writer) error {
	tables := []strategy.TableType{strategy.Hard, strategy.Soft, strategy.Pair}
	if c.Table != "" {
		t, err := strategy.ParseTableType(c.Table)
		if err != nil {
			return err
		}
		tables = []strategy.TableType{t}
	}

	for _, t := range tables {
		fmt.Fprintln(w, tui.RenderChart(t, nil))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, tui.ChartLegend())
	return nil
}
