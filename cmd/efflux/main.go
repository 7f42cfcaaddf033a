package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"plugin"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/whitfin/efflux"
	"github.com/whitfin/efflux/sqlio"
)

type localFlags struct {
	inputs    []string
	output    string
	lenient   bool
	sourceDSN string
	sourceTab string
	sourceKey string
	sourceVal string
	sinkDSN   string
	sinkTab   string
	sinkKey   string
	sinkVal   string
	sinkWipe  bool
}

func main() {
	var pluginPath string

	root := &cobra.Command{
		Use:   "efflux",
		Short: "Run Hadoop Streaming map/reduce stages built as Go plugins",
		Long: `efflux runs map and reduce stages of a Hadoop Streaming job from a Go
plugin exposing Map and Reduce functions, either as single stages wired to
the process streams or as a full local pipeline with an in-process sort.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&pluginPath, "plugin", "p", "", "plugin .so exposing Map and Reduce")
	root.MarkPersistentFlagRequired("plugin")

	root.AddCommand(&cobra.Command{
		Use:   "map",
		Short: "Run the mapping stage over stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadPlugin(pluginPath)
			if err != nil {
				return err
			}
			efflux.RunMapper(m)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "reduce",
		Short: "Run the reduction stage over sorted stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := loadPlugin(pluginPath)
			if err != nil {
				return err
			}
			efflux.RunReducer(r)
			return nil
		},
	})

	lf := localFlags{}
	local := &cobra.Command{
		Use:   "local",
		Short: "Run a full map/sort/reduce pipeline in this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, r, err := loadPlugin(pluginPath)
			if err != nil {
				return err
			}
			return runLocal(cmd.Context(), m, r, lf)
		},
	}
	local.Flags().StringSliceVarP(&lf.inputs, "input", "i", nil, "input files (globs allowed, default stdin)")
	local.Flags().StringVarP(&lf.output, "output", "o", "", "output file (default stdout)")
	local.Flags().BoolVar(&lf.lenient, "lenient", false, "skip malformed input lines instead of failing")
	local.Flags().StringVar(&lf.sourceDSN, "source-dsn", "", "MySQL DSN to read job input from")
	local.Flags().StringVar(&lf.sourceTab, "source-table", "", "source table")
	local.Flags().StringVar(&lf.sourceKey, "source-key-column", "", "source key column")
	local.Flags().StringVar(&lf.sourceVal, "source-value-column", "", "source value column")
	local.Flags().StringVar(&lf.sinkDSN, "sink-dsn", "", "MySQL DSN to write job output to")
	local.Flags().StringVar(&lf.sinkTab, "sink-table", "", "sink table")
	local.Flags().StringVar(&lf.sinkKey, "sink-key-column", "", "sink key column")
	local.Flags().StringVar(&lf.sinkVal, "sink-value-column", "", "sink value column")
	local.Flags().BoolVar(&lf.sinkWipe, "sink-replace", false, "clear the sink table before importing")
	root.AddCommand(local)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("efflux failed")
		os.Exit(1)
	}
}

func runLocal(ctx context.Context, m efflux.Mapper, r efflux.Reducer, lf localFlags) error {
	in, closeIn, err := openInput(ctx, lf)
	if err != nil {
		return err
	}
	defer closeIn()

	opts := &efflux.Options{Lenient: lf.lenient}

	if lf.sinkDSN != "" {
		db, err := sqlio.OpenDSN(ctx, lf.sinkDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		pr, pw := io.Pipe()
		done := make(chan error, 1)
		go func() {
			done <- sqlio.ImportTSV(ctx, db, sqlio.SinkConfig{
				Table:     lf.sinkTab,
				KeyColumn: lf.sinkKey,
				ValColumn: lf.sinkVal,
				Replace:   lf.sinkWipe,
			}, pr)
		}()

		err = efflux.RunLocalOptions(m, r, in, pw, opts)
		pw.CloseWithError(err)
		if ierr := <-done; err == nil {
			err = ierr
		}
		return err
	}

	out := io.Writer(os.Stdout)
	if lf.output != "" {
		f, err := os.Create(lf.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return efflux.RunLocalOptions(m, r, in, out, opts)
}

func openInput(ctx context.Context, lf localFlags) (io.Reader, func(), error) {
	if lf.sourceDSN != "" {
		db, err := sqlio.OpenDSN(ctx, lf.sourceDSN)
		if err != nil {
			return nil, nil, err
		}
		pr, pw := io.Pipe()
		go func() {
			pw.CloseWithError(sqlio.ExportTSV(ctx, db, sqlio.SourceConfig{
				Table:     lf.sourceTab,
				KeyColumn: lf.sourceKey,
				ValColumn: lf.sourceVal,
			}, pw))
		}()
		return pr, func() { db.Close() }, nil
	}

	if len(lf.inputs) == 0 {
		return os.Stdin, func() {}, nil
	}

	var files []*os.File
	var readers []io.Reader
	for _, pattern := range lf.inputs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, nil, err
		}
		if len(matches) == 0 {
			return nil, nil, fmt.Errorf("no input files matched: %s", pattern)
		}
		for _, match := range matches {
			f, err := os.Open(match)
			if err != nil {
				for _, open := range files {
					open.Close()
				}
				return nil, nil, err
			}
			files = append(files, f)
			readers = append(readers, f)
		}
	}
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	return io.MultiReader(readers...), closeAll, nil
}

// load the application Map and Reduce functions from a plugin .so
func loadPlugin(path string) (efflux.Mapper, efflux.Reducer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}
	p, err := plugin.Open(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("open plugin: %w", err)
	}

	xm, err := p.Lookup("Map")
	if err != nil {
		return nil, nil, err
	}
	mapf, ok := xm.(func(key, value string, ctx *efflux.Context) error)
	if !ok {
		return nil, nil, fmt.Errorf("plugin Map has the wrong signature")
	}

	xr, err := p.Lookup("Reduce")
	if err != nil {
		return nil, nil, err
	}
	reducef, ok := xr.(func(key string, values *efflux.Values, ctx *efflux.Context) error)
	if !ok {
		return nil, nil, fmt.Errorf("plugin Reduce has the wrong signature")
	}

	return efflux.MapperFunc(mapf), efflux.ReducerFunc(reducef), nil
}
