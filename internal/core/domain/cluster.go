package domain

// Known visualization asset names. The server's asset vocabulary has
// drifted across versions, so this set is a superset of every observed
// variant; absent assets are simply not rendered.
const (
	AssetScatterPlot = "scatter_plot"
	AssetBarChart    = "bar_chart"
	AssetPieChart    = "pie_chart"
	AssetWordCloud   = "word_cloud"
)

// AssetNames lists the asset vocabulary in display order.
var AssetNames = []string{AssetScatterPlot, AssetBarChart, AssetPieChart, AssetWordCloud}

// ClusterOutcome is a normalized clustering result. It is read-only and
// rebuilt in full on every fetch.
type ClusterOutcome struct {
	// SubmissionID is the server-issued identifier the result belongs to.
	SubmissionID string

	// Themes maps each theme label to the codewords assigned to it, in
	// server order. Only themes that received at least one word appear;
	// a theme with zero matches is absent, never present-with-empty-list.
	Themes map[string][]string

	// Assets maps asset name to its opaque payload (a base64 data URL).
	// Any subset of AssetNames may be present.
	Assets map[string]string
}

// Asset returns the named visualization payload, if present.
func (o *ClusterOutcome) Asset(name string) (string, bool) {
	v, ok := o.Assets[name]
	return v, ok
}

// WordCount returns the total number of clustered words across themes.
func (o *ClusterOutcome) WordCount() int {
	n := 0
	for _, words := range o.Themes {
		n += len(words)
	}
	return n
}
