package tracker

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/model"
	"github.com/codesolver12/weight-loss-tracker/internal/service"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var (
	exportKind   string
	exportFormat string
	exportOut    string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one kind of entry as CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseKind(exportKind)
		if err != nil {
			return err
		}
		format, err := service.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		q, err := listQuery("", exportFrom, exportTo, 0)
		if err != nil {
			return err
		}
		q.Order = store.DateAsc
		return withStore(func(ctx context.Context, st *store.Store) error {
			state, err := loadKind(ctx, st, kind, q)
			if err != nil {
				return err
			}
			if exportOut == "" {
				return service.Export(cmd.OutOrStdout(), state, kind, format)
			}
			var buf bytes.Buffer
			if err := service.Export(&buf, state, kind, format); err != nil {
				return err
			}
			if err := os.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s entries to %s\n", kind, exportOut)
			return nil
		})
	},
}

func loadKind(ctx context.Context, st *store.Store, kind model.Kind, q store.Query) (service.State, error) {
	var (
		state service.State
		err   error
	)
	switch kind {
	case model.KindFood:
		state.Food, err = st.QueryFood(ctx, q)
	case model.KindWeight:
		state.Weight, err = st.QueryWeight(ctx, q)
	case model.KindSleep:
		state.Sleep, err = st.QuerySleep(ctx, q)
	}
	return state, err
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportKind, "kind", "", "Entry kind: food|weight|sleep")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv|json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date YYYY-MM-DD")
	_ = exportCmd.MarkFlagRequired("kind")
}
