package strategy

import "fmt"

// TableType identifies which chart a hand is read from.
type TableType int

const (
	Hard TableType = iota
	Soft
	Pair
)

// String returns the lower-case table name used in scenario keys
func (t TableType) String() string {
	switch t {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return "unknown"
	}
}

// ParseTableType accepts "hard", "soft", "pair" and "pairs".
func ParseTableType(s string) (TableType, error) {
	switch s {
	case "hard":
		return Hard, nil
	case "soft":
		return Soft, nil
	case "pair", "pairs":
		return Pair, nil
	default:
		return 0, fmt.Errorf("unknown table %q", s)
	}
}

// Columns are the dealer upcards in chart order.
var Columns = [10]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}

// Charts for a multi-deck shoe, dealer stands on soft 17, double after
// split allowed, late surrender.
var (
	hardRows = []string{"8", "9", "10", "11", "12", "13", "14", "15", "16", "17+"}

	hardChart = [][10]StrategyAction{
		//         2  3  4  5  6  7  8  9  10  A
		/* 8-  */ {H, H, H, H, H, H, H, H, H, H},
		/* 9   */ {H, D, D, D, D, H, H, H, H, H},
		/* 10  */ {D, D, D, D, D, D, D, D, H, H},
		/* 11  */ {D, D, D, D, D, D, D, D, D, H},
		/* 12  */ {H, H, S, S, S, H, H, H, H, H},
		/* 13  */ {S, S, S, S, S, H, H, H, H, H},
		/* 14  */ {S, S, S, S, S, H, H, H, H, H},
		/* 15  */ {S, S, S, S, S, H, H, H, Rh, H},
		/* 16  */ {S, S, S, S, S, H, H, Rh, Rh, Rh},
		/* 17+ */ {S, S, S, S, S, S, S, S, S, S},
	}

	softRows = []string{"A,2", "A,3", "A,4", "A,5", "A,6", "A,7", "A,8", "A,9"}

	softChart = [][10]StrategyAction{
		//         2  3  4  5  6  7  8  9  10 A
		/* A,2 */ {H, H, H, D, D, H, H, H, H, H},
		/* A,3 */ {H, H, H, D, D, H, H, H, H, H},
		/* A,4 */ {H, H, D, D, D, H, H, H, H, H},
		/* A,5 */ {H, H, D, D, D, H, H, H, H, H},
		/* A,6 */ {H, D, D, D, D, H, H, H, H, H},
		/* A,7 */ {S, Ds, Ds, Ds, Ds, S, S, H, H, H},
		/* A,8 */ {S, S, S, S, S, S, S, S, S, S},
		/* A,9 */ {S, S, S, S, S, S, S, S, S, S},
	}

	pairRows = []string{"2,2", "3,3", "4,4", "5,5", "6,6", "7,7", "8,8", "9,9", "10,10", "A,A"}

	pairChart = [][10]StrategyAction{
		//           2  3  4  5  6  7  8  9  10 A
		/* 2,2   */ {P, P, P, P, P, P, H, H, H, H},
		/* 3,3   */ {P, P, P, P, P, P, H, H, H, H},
		/* 4,4   */ {H, H, H, P, P, H, H, H, H, H},
		/* 5,5   */ {D, D, D, D, D, D, D, D, H, H},
		/* 6,6   */ {P, P, P, P, P, H, H, H, H, H},
		/* 7,7   */ {P, P, P, P, P, P, H, H, H, H},
		/* 8,8   */ {P, P, P, P, P, P, P, P, P, P},
		/* 9,9   */ {P, P, P, P, P, S, P, P, S, S},
		/* 10,10 */ {S, S, S, S, S, S, S, S, S, S},
		/* A,A   */ {P, P, P, P, P, P, P, P, P, P},
	}
)

// ChartView is a read-only copy of one chart for rendering.
type ChartView struct {
	Table   TableType
	Rows    []string
	Columns []string
	Cells   [][]StrategyAction
}

// Chart returns a copy of the chart for t.
func Chart(t TableType) ChartView {
	rows, cells := chartData(t)
	view := ChartView{
		Table:   t,
		Rows:    append([]string(nil), rows...),
		Columns: append([]string(nil), Columns[:]...),
		Cells:   make([][]StrategyAction, len(cells)),
	}
	for i := range cells {
		row := cells[i]
		view.Cells[i] = row[:]
	}
	return view
}

func chartData(t TableType) ([]string, [][10]StrategyAction) {
	switch t {
	case Soft:
		return softRows, softChart
	case Pair:
		return pairRows, pairChart
	default:
		return hardRows, hardChart
	}
}
