package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/listings-api/internal/model"
)

var (
	searchPage     int
	searchLimit    int
	searchText     string
	searchType     string
	searchMinPrice float64
	searchMaxPrice float64
	searchZip      string
	searchCity     string
	searchState    string
	searchLat      float64
	searchLong     float64
	searchRadius   float64
	searchNoRaw    bool
	searchXLSX     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one combined listing search and print or export the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		q := model.SearchQuery{
			Page:         searchPage,
			Limit:        searchLimit,
			Search:       searchText,
			PropertyType: searchType,
			ZipCode:      searchZip,
			City:         searchCity,
			State:        searchState,
			IncludeRaw:   !searchNoRaw,
		}
		if cmd.Flags().Changed("min-price") {
			q.MinPrice = &searchMinPrice
		}
		if cmd.Flags().Changed("max-price") {
			q.MaxPrice = &searchMaxPrice
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("long") {
			q.Lat = &searchLat
			q.Long = &searchLong
		}
		if cmd.Flags().Changed("radius") {
			q.Radius = &searchRadius
		}

		result, err := initService(st).Search(ctx, q)
		if err != nil {
			return err
		}

		if searchXLSX != "" {
			return writeXLSX(searchXLSX, result)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// writeXLSX exports a result page as a flat spreadsheet, one property per
// row. Raw payloads are never exported.
func writeXLSX(path string, result *model.PageResult) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Properties")
	if err != nil {
		return eris.Wrap(err, "search: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{
		"ID", "Source", "Street Address", "Unit", "City", "State", "Zip",
		"County", "Type", "Beds", "Baths", "Sq Ft", "Year Built",
		"Purchase Price", "ARV", "Status",
	} {
		header.AddCell().Value = col
	}

	for _, p := range result.Properties {
		row := sheet.AddRow()
		row.AddCell().Value = p.ID
		row.AddCell().Value = string(p.Source)
		row.AddCell().Value = p.StreetAddress
		row.AddCell().Value = p.Unit
		row.AddCell().Value = p.City
		row.AddCell().Value = p.State
		row.AddCell().Value = p.ZipCode
		row.AddCell().Value = p.County
		row.AddCell().Value = p.PropertyType
		row.AddCell().Value = intCell(p.Bedrooms)
		row.AddCell().Value = floatCell(p.Bathrooms)
		row.AddCell().Value = intCell(p.SquareFeet)
		row.AddCell().Value = intCell(p.YearBuilt)
		row.AddCell().Value = floatCell(p.PurchasePrice)
		row.AddCell().Value = floatCell(p.ARV)
		row.AddCell().Value = p.Status
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "search: save %s", path)
	}
	fmt.Printf("wrote %d of %d properties to %s\n", len(result.Properties), result.Total, path)
	return nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page number")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "page size (1-100)")
	searchCmd.Flags().StringVar(&searchText, "search", "", "free text over internal address/city/state")
	searchCmd.Flags().StringVar(&searchType, "type", "", "property type")
	searchCmd.Flags().Float64Var(&searchMinPrice, "min-price", 0, "minimum purchase price")
	searchCmd.Flags().Float64Var(&searchMaxPrice, "max-price", 0, "maximum purchase price")
	searchCmd.Flags().StringVar(&searchZip, "zipcode", "", "zip code for the external provider")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "city for the external provider")
	searchCmd.Flags().StringVar(&searchState, "state", "", "state for the external provider")
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "latitude for radius search")
	searchCmd.Flags().Float64Var(&searchLong, "long", 0, "longitude for radius search")
	searchCmd.Flags().Float64Var(&searchRadius, "radius", 0, "radius for location search (clamped to 20)")
	searchCmd.Flags().BoolVar(&searchNoRaw, "no-raw", false, "omit raw source payloads")
	searchCmd.Flags().StringVar(&searchXLSX, "xlsx", "", "write the page to an XLSX file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}
