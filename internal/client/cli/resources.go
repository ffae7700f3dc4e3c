package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/aura/internal/client/models"
	"github.com/dmitrijs2005/aura/internal/client/services"
)

func newResourcesCmd(st *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"ls"},
		Short:   "List resources in the library",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}

			items, err := app.transfers.List(cmd.Context())
			if err != nil {
				return app.checkRevoked(cmd.Context(), err)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			return printResources(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")

	cmd.AddCommand(newCreateResourceCmd(st))
	return cmd
}

func newCreateResourceCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title> <storage-key>",
		Short: "Register an uploaded file as a resource (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}

			r, err := app.transfers.Create(cmd.Context(), args[0], args[1])
			if err != nil {
				return app.checkRevoked(cmd.Context(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s\n", r.ID)
			return nil
		},
	}
}

func newUploadCmd(st *state) *cobra.Command {
	var opts services.UploadOptions

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file to object storage (admin)",
		Long: `Upload a file. By default the server issues a short-lived presigned URL
and the file goes straight to object storage; --direct sends it through the
server instead (limited to 50 MiB).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}

			res, err := app.transfers.Upload(cmd.Context(), args[0], opts)
			if res == nil {
				return app.checkRevoked(cmd.Context(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploaded %s (%s, %d bytes)\n", res.StorageKey, res.ContentType, res.Size)
			if res.Resource != nil {
				fmt.Fprintf(out, "Created resource %s\n", res.Resource.ID)
			}
			// The bytes are stored even when registering the resource failed.
			return app.checkRevoked(cmd.Context(), err)
		},
	}
	cmd.Flags().BoolVar(&opts.Direct, "direct", false, "send the file through the server")
	cmd.Flags().StringVar(&opts.Title, "title", "", "also register a resource with this title")
	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "content type (detected when empty)")
	return cmd
}

func newDownloadCmd(st *state) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download <resource-id>",
		Short: "Download a resource's file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := st.mustApp()
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}

			path, n, err := app.transfers.Download(cmd.Context(), args[0], out)
			if err != nil {
				return app.checkRevoked(cmd.Context(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "target file or directory (default current directory)")
	return cmd
}

func newConfigCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:         "config",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoApp: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
}

func printResources(w io.Writer, items []*models.Resource) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No resources")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tFILE\tCREATED")
	for _, r := range items {
		file := "-"
		if r.HasFile() {
			file = r.StorageKey
		}
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, file, created)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
