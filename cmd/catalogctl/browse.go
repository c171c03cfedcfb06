package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"chronova/internal/adapter/seed"
	"chronova/internal/domain/entity"
	"chronova/internal/domain/repository"
	"chronova/internal/infrastructure/catalog"
	"chronova/internal/usecase"
	"chronova/pkg/errors"
)

var (
	browseFileFlag    string
	browseURLFlag     string
	browseTimeoutFlag time.Duration
	browseOutputFlag  string
	browseInput       entity.FilterInput
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Print the collection page for a set of filters",
	Long:  `Load a catalog from a fixture file or a Catalog Service URL and print the filtered, sorted products.`,
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseFileFlag, "file", "f", "", "Catalog fixture (YAML)")
	browseCmd.Flags().StringVarP(&browseURLFlag, "url", "u", "", "Catalog Service base URL")
	browseCmd.Flags().DurationVar(&browseTimeoutFlag, "timeout", 10*time.Second, "Catalog Service request timeout")
	browseCmd.Flags().StringVarP(&browseOutputFlag, "output", "o", "table", "Output format: table, json, yaml")
	browseCmd.Flags().StringVar(&browseInput.Category, "category", "", "Category id")
	browseCmd.Flags().StringVar(&browseInput.Brand, "brand", "", "Brand id")
	browseCmd.Flags().StringVar(&browseInput.MinPrice, "min-price", "", "Lowest price, inclusive")
	browseCmd.Flags().StringVar(&browseInput.MaxPrice, "max-price", "", "Highest price, inclusive")
	browseCmd.Flags().StringVarP(&browseInput.Sort, "sort", "s", "newest", "newest, price-asc, price-desc or sold-desc")
	browseCmd.MarkFlagsMutuallyExclusive("file", "url")
	browseCmd.MarkFlagsOneRequired("file", "url")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var reader repository.CatalogReader
	if browseFileFlag != "" {
		f, err := seed.LoadFile(browseFileFlag)
		if err != nil {
			return err
		}
		reader = seed.NewCatalog(f)
	} else {
		reader = catalog.NewClient(browseURLFlag, browseTimeoutFlag)
	}

	return browse(cmd.Context(), cmd.OutOrStdout(), reader, browseInput, browseOutputFlag)
}

func browse(ctx context.Context, out io.Writer, reader repository.CatalogReader, input entity.FilterInput, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	snapshot, err := usecase.NewCollectionUseCase(reader).LoadCatalog(ctx)
	if err != nil {
		return err
	}
	view := usecase.NewCollectionView(snapshot.Products, input.State())

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(view)
	case "table", "":
		writeCollection(out, view, snapshot)
		return nil
	default:
		return errors.BadRequest(fmt.Sprintf("Unknown output format %q", format), nil)
	}
}
