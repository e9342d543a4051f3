package types

// IngestResult summarises one run of the ingestion pipeline.
type IngestResult struct {
	InputFile   string
	OutputFile  string
	Sheet       string
	HeaderRow   int
	Table       *Table
	Pruned      []string
	Coerced     []string
	NotSelected []string
	Validated   bool
}
