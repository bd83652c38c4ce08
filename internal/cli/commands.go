package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"modelexport/internal/common/fsutil"
	"modelexport/internal/config"
	"modelexport/internal/exporter"
	"modelexport/internal/httpapi"
	"modelexport/internal/service"
	"modelexport/internal/taxonomy"
	"modelexport/pkg/types"
)

func categoryArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, c := range taxonomy.Categories() {
		names = append(names, c.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show model categories and their library subdirectories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range taxonomy.Categories() {
				fmt.Fprintf(tw, "%s\t%s\n", c, taxonomy.Subdirectory(c))
			}
			return tw.Flush()
		},
	}
}

func newListCmd(opts *Options) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:               "list <category>",
		Short:             "List candidate model files for a category",
		Example:           "  modelexport list LoRA --library-root ~/sd/models\n  modelexport list Checkpoints --long",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: categoryArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := taxonomy.ParseCategory(args[0])
			if err != nil {
				return err
			}
			e, err := opts.loadEnv(cmd)
			if err != nil {
				return err
			}
			svc := e.service()
			files, err := svc.ListCandidateFiles("", c)
			if err != nil {
				return err
			}
			if !long {
				for _, f := range files {
					fmt.Fprintln(e.out, f)
				}
				return nil
			}
			return printLong(e.out, svc.LibraryRoot(), c, files)
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show file sizes")
	return cmd
}

func printLong(w io.Writer, root string, c types.Category, files []types.ModelFile) error {
	root, err := fsutil.ExpandHome(root)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range files {
		size := "-"
		if fi, err := os.Stat(taxonomy.SourcePath(root, c, f)); err == nil {
			size = units.HumanSize(float64(fi.Size()))
		}
		fmt.Fprintf(tw, "%s\t%s\n", size, f)
	}
	return tw.Flush()
}

func newExportCmd(opts *Options) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:               "export <category> <file>",
		Short:             "Copy one model file to a destination directory",
		Example:           "  modelexport export LoRA detail.safetensors --dest /mnt/backup",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: categoryArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := taxonomy.ParseCategory(args[0])
			if err != nil {
				return err
			}
			e, err := opts.loadEnv(cmd)
			if err != nil {
				return err
			}
			res := e.service().Export(exporter.Request{Category: c, FileName: args[1], Destination: dest})
			fmt.Fprintln(e.out, res.Message())
			if !res.OK {
				return errExportFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory (defaults to default_export_dir from settings)")
	return cmd
}

// errExportFailed is returned after the failure message has already been printed.
var errExportFailed = errors.New("export failed")

func newServeCmd(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list/export API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.loadEnv(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				e.cfg.Addr = addr
			}
			snapshot := func() config.Config { return e.cfg }
			if opts.ConfigPath != "" {
				w, err := config.NewWatcher(opts.ConfigPath, e.log, nil)
				if err != nil {
					return err
				}
				defer w.Close()
				snapshot = func() config.Config {
					c := w.Snapshot()
					if opts.LibraryRoot != "" {
						c.LibraryRoot = opts.LibraryRoot
					}
					return c
				}
			}
			exp := exporter.New(exporter.WithLogger(e.log), exporter.WithObserver(httpapi.ExportMetrics{}))
			svc := service.New(snapshot, exp, e.log)

			httpapi.SetLogger(e.log)
			httpapi.SetCORSOptions(e.cfg.CORSEnabled, e.cfg.CORSOrigins, nil, nil)
			srv := &http.Server{Addr: e.cfg.Addr, Handler: httpapi.NewMux(svc), ReadHeaderTimeout: 10 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			errc := make(chan error, 1)
			go func() {
				e.log.Info().Str("addr", e.cfg.Addr).Str("library_root", svc.LibraryRoot()).Msg("modelexport listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()
			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				e.log.Error().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults to addr from settings or "+config.EnvAddr+")")
	return cmd
}

