package plugins

import (
	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/plugin"
	"pipekit.dev/cli/internal/core/ratio"
)

// TextWriter writes text records, optionally fanning them out into
// ratio-scheduled splits (train/val/test style).
type TextWriter struct {
	Output      string
	SplitRatios []int
	SplitNames  []string
	SplitGroup  string
}

func (w *TextWriter) Name() string { return "text-writer" }

func (w *TextWriter) Description() string {
	return "Writes records as plain text, optionally divided into named splits."
}

func (w *TextWriter) Aliases() []string { return []string{"write-text"} }

// Accepts is deliberately broad: any text-shaped producer is admitted
// through the tag hierarchy.
func (w *TextWriter) Accepts() []capability.Tag { return []capability.Tag{TagText} }

func (w *TextWriter) SupportsPlaceholders() bool { return true }

func (w *TextWriter) Options() *plugin.Options {
	o := plugin.NewOptions(w.Name())
	fs := o.Flags()
	fs.StringVarP(&w.Output, "output", "o", "", "path to write to; supports placeholders")
	fs.IntSliceVar(&w.SplitRatios, "split-ratios", nil, "integer ratios for the generated splits (must sum to 100)")
	fs.StringSliceVar(&w.SplitNames, "split-names", nil, "names for the generated splits")
	fs.StringVar(&w.SplitGroup, "split-group", "", "regexp with one group keeping matching items in the same split")
	return o
}

// Splitting reports whether split options were supplied and, if so, builds
// the scheduler that routes records to splits.
func (w *TextWriter) Splitting() (*ratio.Scheduler, bool, error) {
	if len(w.SplitNames) == 0 || len(w.SplitRatios) == 0 {
		return nil, false, nil
	}
	s, err := ratio.NewScheduler(w.SplitRatios, w.SplitNames, w.SplitGroup)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// CountWriter counts records instead of persisting them.
type CountWriter struct {
	PerTag bool
}

func (w *CountWriter) Name() string { return "count-writer" }

func (w *CountWriter) Description() string {
	return "Counts records instead of writing them."
}

func (w *CountWriter) Accepts() []capability.Tag { return []capability.Tag{capability.Any} }

func (w *CountWriter) Options() *plugin.Options {
	o := plugin.NewOptions(w.Name())
	o.Flags().BoolVar(&w.PerTag, "per-tag", false, "report one count per type tag")
	return o
}
