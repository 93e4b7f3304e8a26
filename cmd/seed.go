package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/listings-api/internal/store"
)

var seedFile string

// seedProperty mirrors store.InternalProperty with YAML field names for
// fixture files.
type seedProperty struct {
	StreetAddress  string   `yaml:"street_address"`
	Unit           string   `yaml:"unit"`
	City           string   `yaml:"city"`
	State          string   `yaml:"state"`
	ZipCode        string   `yaml:"zip_code"`
	County         string   `yaml:"county"`
	PropertyType   string   `yaml:"property_type"`
	Bedrooms       *int     `yaml:"bedrooms"`
	Bathrooms      *float64 `yaml:"bathrooms"`
	SquareFeet     *int     `yaml:"square_feet"`
	LotSize        *float64 `yaml:"lot_size"`
	YearBuilt      *int     `yaml:"year_built"`
	PurchasePrice  *float64 `yaml:"purchase_price"`
	ARV            *float64 `yaml:"arv"`
	RepairEstimate *float64 `yaml:"repair_estimate"`
	HoldingCosts   *float64 `yaml:"holding_costs"`
	AssignmentFee  *float64 `yaml:"assignment_fee"`
	Status         string   `yaml:"status"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load internal properties from a YAML fixture file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(seedFile)
		if err != nil {
			return eris.Wrap(err, "seed: read fixture")
		}

		var fixtures []seedProperty
		if err := yaml.Unmarshal(data, &fixtures); err != nil {
			return eris.Wrap(err, "seed: parse fixture")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		for _, f := range fixtures {
			_, err := st.InsertProperty(ctx, store.InternalProperty{
				StreetAddress:  f.StreetAddress,
				Unit:           f.Unit,
				City:           f.City,
				State:          f.State,
				ZipCode:        f.ZipCode,
				County:         f.County,
				PropertyType:   f.PropertyType,
				Bedrooms:       f.Bedrooms,
				Bathrooms:      f.Bathrooms,
				SquareFeet:     f.SquareFeet,
				LotSize:        f.LotSize,
				YearBuilt:      f.YearBuilt,
				PurchasePrice:  f.PurchasePrice,
				ARV:            f.ARV,
				RepairEstimate: f.RepairEstimate,
				HoldingCosts:   f.HoldingCosts,
				AssignmentFee:  f.AssignmentFee,
				Status:         f.Status,
			})
			if err != nil {
				return err
			}
		}

		total, err := st.CountProperties(ctx)
		if err != nil {
			return err
		}

		zap.L().Info("seed complete",
			zap.Int("inserted", len(fixtures)),
			zap.Int("total", total),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.yaml", "fixture file path")
	rootCmd.AddCommand(seedCmd)
}
