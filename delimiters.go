package efflux

// Delimiters holds the input/output field separators for one stage of a
// streaming job. Hadoop configures these per stage; a tab is the default.
type Delimiters struct {
	input  string
	output string
}

// NewDelimiters resolves the separators for the current stage from the job
// configuration.
func NewDelimiters(conf *Configuration) Delimiters {
	stage := "reduce"
	if v, _ := conf.Get("mapreduce.task.ismap"); v == "true" {
		stage = "map"
	}
	return Delimiters{
		input:  conf.GetDefault("stream."+stage+".input.field.separator", "\t"),
		output: conf.GetDefault("stream."+stage+".output.field.separator", "\t"),
	}
}

// Input returns the input field separator.
func (d Delimiters) Input() string { return d.input }

// Output returns the output field separator.
func (d Delimiters) Output() string { return d.output }
