package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func seasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Manage season rate tables",
	}
	cmd.AddCommand(seasonImportCmd())
	return cmd
}

func seasonImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a TOML season file and make it the active season",
		Long: `Validate a TOML season file and make it the active season in the postgres store.

The memory driver keeps no state between processes, so this command refuses it.
With STORAGE_DRIVER=memory, load the season through SEASON_FILE when running serve.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			if rt.config.App.StorageDriver == utils.StorageDriverMemory {
				return errors.New("season import needs a persistent store, set STORAGE_DRIVER=postgres")
			}

			seasons := usecase.NewSeasonService(rt.repo, rt.logger)
			table, err := seasons.ImportFile(cmd.Context(), file)
			if err != nil {
				rt.logger.Error("Season import failed", zap.Error(err), zap.String("path", file))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "activated season %q (%s to %s), id %s\n",
				table.Name, table.SeasonStart, table.SeasonEnd, table.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "TOML file with a [season] table")
	return cmd
}
