package database

// QueryResult is the tabular output of an admitted statement.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

type TopSeller struct {
	Name        string   `json:"name"`
	GlobalSales *float64 `json:"global_sales"`
}

// Game is one row of the games table.
type Game struct {
	Rank        *int
	Name        *string
	Platform    *string
	Year        *int
	Genre       *string
	Publisher   *string
	NASales     *float64
	EUSales     *float64
	JPSales     *float64
	OtherSales  *float64
	GlobalSales *float64
}
